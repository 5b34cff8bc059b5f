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

const DOCKERFILE = `FROM python:{{.PythonVersion}}-slim

ENV PYTHONDONTWRITEBYTECODE=1 \
    PYTHONUNBUFFERED=1

WORKDIR /app

RUN pip install --no-cache-dir pipenv

COPY Pipfile Pipfile.lock ./
RUN pipenv install --system --deploy

COPY frontend ./frontend
RUN pip install --no-cache-dir ./frontend

COPY backend ./backend

# user media never ships inside the image, it lives on the media volume
RUN rm -rf {{.MediaRoot}}/*

COPY shopctl /usr/local/bin/shopctl

EXPOSE {{.AppPort}}

ENTRYPOINT ["shopctl", "start", "--"]
CMD ["gunicorn", "webshop.wsgi:application", "--bind", "0.0.0.0:{{.AppPort}}"]
`
