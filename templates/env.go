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

const ROOT_ENV = `# Environment for the {{.ProjectName}} deployment.
# Every variable below must be defined before the stack starts.

DJANGO_DB_USER=shop
DJANGO_DB_PASSWORD=change-me
DJANGO_DB_NAME=shopdb
# The app reaches postgres over the compose network, where it always listens
# on its container port. The database_port in deploy.yaml only changes the
# host-side mapping.
DJANGO_DB_HOST=db
DJANGO_DB_PORT=5432
DJANGO_SECRET_KEY=change-me
DJANGO_ALLOWED_HOSTS=localhost
DJANGO_DEBUG=False
DJANGO_LOGLEVEL=info
`

const ROOT_DOCKERIGNORE = `.git
.env
db.sqlite3
__pycache__
*.pyc
{{.UploadsDir}}
backend/webshop/uploads
`
