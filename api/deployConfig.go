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

package api

import (
	"fmt"
	"io/ioutil"

	"github.com/imdario/mergo"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v2"

	"github.com/webshop/shopctl/helper"
)

// RestartPolicies holds the per-service container restart policies.
//
// Proxy has no default on purpose: the observed deployments disagree on what
// the reverse proxy should do after a crash, so the operator has to pick one.
type RestartPolicies struct {
	Database string `yaml:"database"`
	App      string `yaml:"app"`
	Proxy    string `yaml:"proxy"`
}

// DeployConfig describes the deployment of a webshop instance, as loaded from
// a `deploy.yaml` file.
type DeployConfig struct {
	ProjectName     string           `yaml:"project_name"`
	PythonVersion   string           `yaml:"python_version"`
	PostgresVersion string           `yaml:"postgres_version"`
	NginxVersion    string           `yaml:"nginx_version"`
	AppImage        string           `yaml:"app_image"`
	AppPort         int              `yaml:"app_port"`
	ProxyPort       int              `yaml:"proxy_port"`
	DatabasePort    int              `yaml:"database_port"`
	StaticRoot      string           `yaml:"static_root"`
	MediaRoot       string           `yaml:"media_root"`
	ManageDir       string           `yaml:"manage_dir"`
	EnvFile         string           `yaml:"env_file"`
	ComposeFile     string           `yaml:"compose_file"`
	Fixture         string           `yaml:"fixture"`
	UploadsDir      string           `yaml:"uploads_dir"`
	Restart         *RestartPolicies `yaml:"restart"`
	CliVersion      string           `yaml:"cli_version,omitempty"`
}

// CreateDefaultDeployConfig returns the defaults every deploy.yaml is extended
// from. The media and static roots are the paths baked into the webshop image.
func CreateDefaultDeployConfig() *DeployConfig {
	return &DeployConfig{
		ProjectName:     "webshop",
		PythonVersion:   "3.11",
		PostgresVersion: "15",
		NginxVersion:    "1.25",
		AppImage:        "webshop/app",
		AppPort:         8000,
		ProxyPort:       80,
		DatabasePort:    5432,
		StaticRoot:      "/app/backend/webshop/static",
		MediaRoot:       "/app/backend/webshop/uploads",
		ManageDir:       "/app/backend/webshop",
		EnvFile:         ".env",
		ComposeFile:     "docker-compose.yaml",
		Fixture:         "fixtures/data.json",
		UploadsDir:      "fixtures/uploads",
		Restart: &RestartPolicies{
			Database: "always",
			App:      "always",
		},
	}
}

// ExtendDefaultDeployConfig extends the default deployment configuration with
// the given config.
//
// The given config is left untouched.
func ExtendDefaultDeployConfig(config *DeployConfig) *DeployConfig {
	defaultConfig := CreateDefaultDeployConfig()
	extendedConfig := DeployConfig{}
	copier.Copy(&extendedConfig, &config)
	mergo.Merge(&extendedConfig, defaultConfig)
	return &extendedConfig
}

func createDeployConfigFromYamlContent(yamlContent []byte) (*DeployConfig, error) {
	config := DeployConfig{}
	err := yaml.Unmarshal(yamlContent, &config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// CreateDeployConfigFromYaml creates a new instance of DeployConfig from a
// given `deploy.yaml` file, extended with the defaults and validated.
func CreateDeployConfigFromYaml(filename string) (*DeployConfig, error) {
	yamlContent, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	loadedConfig, err := createDeployConfigFromYamlContent(yamlContent)
	if err != nil {
		return nil, err
	}
	config := ExtendDefaultDeployConfig(loadedConfig)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the invariants the generated deployment relies on.
func (config *DeployConfig) Validate() error {
	if config.Restart == nil || config.Restart.Proxy == "" {
		return fmt.Errorf("restart.proxy is not set: pick an explicit restart policy for the reverse proxy (e.g. \"always\" or \"no\") in deploy.yaml")
	}
	if _, err := helper.SanitizeVersion(config.PythonVersion); err != nil {
		return fmt.Errorf("python_version: %v", err)
	}
	if _, err := helper.SanitizeVersion(config.PostgresVersion); err != nil {
		return fmt.Errorf("postgres_version: %v", err)
	}
	if config.StaticRoot == config.MediaRoot {
		return fmt.Errorf("static_root and media_root must differ, both are %s", config.StaticRoot)
	}
	if config.AppPort == config.ProxyPort {
		return fmt.Errorf("app_port and proxy_port must differ, both are %d", config.AppPort)
	}
	return nil
}
