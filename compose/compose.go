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

package compose

import (
	"fmt"
	"io/ioutil"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/webshop/shopctl/api"
)

const (
	DatabaseService = "db"
	AppService      = "app"
	ProxyService    = "nginx"

	StaticVolume = "static_volume"
	MediaVolume  = "media_volume"
)

type Service struct {
	Image       string            `yaml:"image,omitempty"`
	Build       string            `yaml:"build,omitempty"`
	Restart     string            `yaml:"restart,omitempty"`
	EnvFile     []string          `yaml:"env_file,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	DependsOn   []string          `yaml:"depends_on,omitempty"`
	Expose      []string          `yaml:"expose,omitempty"`
	Ports       []string          `yaml:"ports,omitempty"`
	Volumes     []string          `yaml:"volumes,omitempty"`
}

type Manifest struct {
	Version  string              `yaml:"version"`
	Services map[string]*Service `yaml:"services"`
	Volumes  map[string]*struct{} `yaml:"volumes,omitempty"`
}

// Generate builds the db -> app -> nginx topology for a deployment.
//
// depends_on only orders the container starts, actual database readiness is
// the app entrypoint's job (`shopctl start`).
func Generate(config *api.DeployConfig) *Manifest {
	staticMount := fmt.Sprintf("%s:%s", StaticVolume, config.StaticRoot)
	mediaMount := fmt.Sprintf("%s:%s", MediaVolume, config.MediaRoot)

	db := &Service{
		Image:   fmt.Sprintf("postgres:%s-alpine", config.PostgresVersion),
		Restart: config.Restart.Database,
		EnvFile: []string{config.EnvFile},
		Environment: map[string]string{
			"POSTGRES_USER":     "${DJANGO_DB_USER}",
			"POSTGRES_PASSWORD": "${DJANGO_DB_PASSWORD}",
			"POSTGRES_DB":       "${DJANGO_DB_NAME}",
		},
		Ports: []string{fmt.Sprintf("%d:5432", config.DatabasePort)},
	}

	app := &Service{
		Image:     config.AppImage,
		Build:     ".",
		Restart:   config.Restart.App,
		EnvFile:   []string{config.EnvFile},
		DependsOn: []string{DatabaseService},
		Expose:    []string{fmt.Sprintf("%d", config.AppPort)},
		Volumes:   []string{staticMount, mediaMount},
	}

	nginx := &Service{
		Image:     fmt.Sprintf("nginx:%s-alpine", config.NginxVersion),
		Restart:   config.Restart.Proxy,
		DependsOn: []string{AppService},
		Ports:     []string{fmt.Sprintf("%d:80", config.ProxyPort)},
		Volumes:   []string{staticMount + ":ro", mediaMount + ":ro"},
	}

	return &Manifest{
		Version: "3.7",
		Services: map[string]*Service{
			DatabaseService: db,
			AppService:      app,
			ProxyService:    nginx,
		},
		Volumes: map[string]*struct{}{
			StaticVolume: nil,
			MediaVolume:  nil,
		},
	}
}

func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Load reads an existing compose manifest, e.g. to resolve service names for
// status/logs/build.
func Load(filename string) (*Manifest, error) {
	yamlContent, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	manifest := Manifest{}
	err = yaml.Unmarshal(yamlContent, &manifest)
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}

// ServiceNames returns the manifest's services, core topology first.
func (m *Manifest) ServiceNames() []string {
	names := []string{}
	for _, name := range []string{DatabaseService, AppService, ProxyService} {
		if _, ok := m.Services[name]; ok {
			names = append(names, name)
		}
	}
	for name := range m.Services {
		if name != DatabaseService && name != AppService && name != ProxyService {
			names = append(names, name)
		}
	}
	return names
}

// ServicesWithBuild returns the services built from a local context, the ones
// `shopctl build` has to rebuild and that may be pushed to a registry.
func (m *Manifest) ServicesWithBuild() []string {
	services := []string{}
	for _, name := range m.ServiceNames() {
		if m.Services[name].Build != "" {
			services = append(services, name)
		}
	}
	return services
}

// splitMount splits "volume:/container/path[:ro]" into its volume name and
// container path.
func splitMount(mount string) (string, string) {
	parts := strings.SplitN(mount, ":", 3)
	if len(parts) < 2 {
		return mount, ""
	}
	return parts[0], parts[1]
}

func (s *Service) mountPath(volume string) (string, bool) {
	for _, mount := range s.Volumes {
		name, path := splitMount(mount)
		if name == volume {
			return path, true
		}
	}
	return "", false
}

func (s *Service) dependsOn(other string) bool {
	for _, dep := range s.DependsOn {
		if dep == other {
			return true
		}
	}
	return false
}

// Validate checks the invariants of the generated topology: start ordering,
// env_file injection, an explicit restart policy everywhere and agreement of
// the static/media mount paths between the app and the proxy.
func (m *Manifest) Validate() error {
	for _, name := range []string{DatabaseService, AppService, ProxyService} {
		svc, ok := m.Services[name]
		if !ok {
			return fmt.Errorf("service %s is missing from the manifest", name)
		}
		if svc.Restart == "" {
			return fmt.Errorf("service %s has no restart policy", name)
		}
	}

	if !m.Services[AppService].dependsOn(DatabaseService) {
		return fmt.Errorf("service %s must depend on %s", AppService, DatabaseService)
	}
	if !m.Services[ProxyService].dependsOn(AppService) {
		return fmt.Errorf("service %s must depend on %s", ProxyService, AppService)
	}

	for _, name := range []string{DatabaseService, AppService} {
		if len(m.Services[name].EnvFile) == 0 {
			return fmt.Errorf("service %s has no env_file", name)
		}
	}

	for _, volume := range []string{StaticVolume, MediaVolume} {
		if _, ok := m.Volumes[volume]; !ok {
			return fmt.Errorf("named volume %s is not declared", volume)
		}

		appPath, ok := m.Services[AppService].mountPath(volume)
		if !ok {
			return fmt.Errorf("service %s does not mount %s", AppService, volume)
		}
		proxyPath, ok := m.Services[ProxyService].mountPath(volume)
		if !ok {
			return fmt.Errorf("service %s does not mount %s", ProxyService, volume)
		}
		if appPath != proxyPath {
			return fmt.Errorf("%s is mounted at %s in %s but %s in %s, nginx would serve stale or missing assets",
				volume, appPath, AppService, proxyPath, ProxyService)
		}
	}

	return nil
}
