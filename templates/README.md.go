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

const ROOT_README = `# {{.ProjectName}} deployment

This directory was scaffolded by shopctl. It holds everything needed to run
the webshop behind nginx with a postgres database.

## Configuration

All runtime configuration is injected through the ` + "`.env`" + ` file. Edit it before
the first start, in particular ` + "`DJANGO_SECRET_KEY`" + ` and ` + "`DJANGO_DB_PASSWORD`" + `.
The harness refuses to start the sequence if any variable is missing.

Deployment shape (images, ports, volume paths, restart policies) lives in
` + "`deploy.yaml`" + `. After editing it, re-render the generated files:

    shopctl generate

## Running

The Dockerfile copies a ` + "`shopctl`" + ` binary into the image to act as the
entrypoint: place a Linux build of shopctl next to the Dockerfile before
building.

Build the images and start the stack:

    shopctl build
    docker compose up -d

The app container's entrypoint is ` + "`shopctl start`" + `: it waits for postgres,
applies the migrations, collects the static assets and then becomes the
gunicorn process. A database that never comes up makes the container exit
with code 69 instead of hanging forever.

## Sample data

With the stack running, load the example fixtures and media files:

    shopctl loaddata --wait-app

Check on the services:

    shopctl status
    shopctl logs app --tail 50
`
