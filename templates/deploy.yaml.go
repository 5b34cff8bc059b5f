// Copyright 2023 The webshop project developers
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package templates

const ROOT_DEPLOY_YAML = `# shopctl deployment configuration, consumed by "shopctl generate".
project_name: {{.ProjectName}}
python_version: "{{.PythonVersion}}"
postgres_version: "{{.PostgresVersion}}"
nginx_version: "{{.NginxVersion}}"
app_image: {{.AppImage}}
app_port: {{.AppPort}}
proxy_port: {{.ProxyPort}}
database_port: {{.DatabasePort}}
static_root: {{.StaticRoot}}
media_root: {{.MediaRoot}}
manage_dir: {{.ManageDir}}
env_file: {{.EnvFile}}
compose_file: {{.ComposeFile}}
fixture: {{.Fixture}}
uploads_dir: {{.UploadsDir}}
restart:
  database: {{.Restart.Database}}
  app: {{.Restart.App}}
  proxy: {{.Restart.Proxy}}
`
