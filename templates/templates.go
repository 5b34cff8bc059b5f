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

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/afero"

	"github.com/webshop/shopctl/helper"
)

// Renderer writes deployment files generated from the template constants in
// this package. The filesystem is pluggable so tests can render in memory.
type Renderer struct {
	Fs afero.Fs
}

func NewRenderer() *Renderer {
	return &Renderer{Fs: afero.NewOsFs()}
}

// Render expands a template constant with the given configuration.
func Render(tplStr string, config interface{}) (string, error) {
	t := template.New("deployment").Funcs(template.FuncMap{
		"snakeify": helper.Snakeify,
		"kebabify": helper.Kebabify,
		"tocaps":   helper.Tocaps,
	})

	t, err := t.Parse(tplStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err = t.Execute(&buf, config); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// GenerateFromTemplate generates a file from a given template and configuration.
func (r *Renderer) GenerateFromTemplate(tplStr, dst string, config interface{}) error {
	content, err := Render(tplStr, config)
	if err != nil {
		return err
	}

	dir := filepath.Dir(dst)
	if err := r.Fs.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	return afero.WriteFile(r.Fs, dst, []byte(content), 0644)
}
