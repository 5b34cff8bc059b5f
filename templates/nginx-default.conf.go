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

const NGINX_DEFAULT_CONF = `upstream {{.ProjectName|snakeify}} {
    server app:{{.AppPort}};
}

server {
    listen 80;
    client_max_body_size 20m;

    location /static/ {
        alias {{.StaticRoot}}/;
    }

    location /media/ {
        alias {{.MediaRoot}}/;
    }

    location / {
        proxy_pass http://{{.ProjectName|snakeify}};
        proxy_set_header Host $host;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_redirect off;
    }
}
`
