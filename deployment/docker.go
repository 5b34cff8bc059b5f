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

package deployment

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/webshop/shopctl/compose"
	"github.com/webshop/shopctl/helper"
)

var logger = helper.GetSugarLogger([]string{"deployment"})

// CommandRunner runs an external command and returns its combined output.
type CommandRunner func(name string, args ...string) ([]byte, error)

func runCommand(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// Docker drives the docker CLI for one compose project. The CLI stays the
// interface on purpose: the harness does exactly what an operator would type.
type Docker struct {
	Run         CommandRunner
	ComposeFile string
	Project     string
}

func NewDocker(composeFile, project string) *Docker {
	return &Docker{
		Run:         runCommand,
		ComposeFile: composeFile,
		Project:     project,
	}
}

func (d *Docker) compose(args ...string) []string {
	composeArgs := []string{"compose", "-f", d.ComposeFile, "-p", d.Project}
	return append(composeArgs, args...)
}

// BuildImages builds the given compose services one by one.
func (d *Docker) BuildImages(services []string) error {
	for _, name := range services {
		logger.Infof("building image for service %s", name)

		out, err := d.Run("docker", d.compose("build", name)...)
		fmt.Printf("%s", out)
		if err != nil {
			return fmt.Errorf("docker compose build %s failed: %v", name, err)
		}
	}
	return nil
}

// PushImages pushes the images of every service built from a local context.
func (d *Docker) PushImages(m *compose.Manifest) error {
	for _, name := range m.ServicesWithBuild() {
		image := m.Services[name].Image
		if image == "" {
			return fmt.Errorf("service %s has a build context but no image name to push", name)
		}
		logger.Infof("pushing image %s", image)

		out, err := d.Run("docker", "push", image)
		fmt.Printf("%s", out)
		if err != nil {
			return fmt.Errorf("docker push %s failed: %v", image, err)
		}
	}
	return nil
}

// ContainerID resolves the running container of a compose service. An empty
// id means the service has no running container.
func (d *Docker) ContainerID(service string) (string, error) {
	out, err := d.Run("docker", d.compose("ps", "-q", service)...)
	if err != nil {
		return "", fmt.Errorf("docker compose ps %s failed: %v (%s)", service, err, out)
	}
	return strings.TrimSpace(string(out)), nil
}

// CopyTo copies a local file or directory into a running container.
func (d *Docker) CopyTo(containerID, src, dst string) error {
	out, err := d.Run("docker", "cp", src, containerID+":"+dst)
	if err != nil {
		return fmt.Errorf("docker cp %s failed: %v (%s)", src, err, out)
	}
	return nil
}

// Exec runs a command inside a running container, in the given workdir.
func (d *Docker) Exec(containerID, workdir string, command ...string) ([]byte, error) {
	args := []string{"exec", "-w", workdir, containerID}
	args = append(args, command...)

	out, err := d.Run("docker", args...)
	if err != nil {
		return out, fmt.Errorf("docker exec failed: %v (%s)", err, out)
	}
	return out, nil
}

// ContainerState is the slice of `docker inspect` output the harness uses.
type ContainerState struct {
	Name  string `json:"Name"`
	State struct {
		Status    string    `json:"Status"`
		StartedAt time.Time `json:"StartedAt"`
	} `json:"State"`
	Config struct {
		Image string `json:"Image"`
	} `json:"Config"`
}

// Inspect returns the state of a single container.
func (d *Docker) Inspect(containerID string) (*ContainerState, error) {
	out, err := d.Run("docker", "inspect", containerID)
	if err != nil {
		return nil, fmt.Errorf("docker inspect %s failed: %v (%s)", containerID, err, out)
	}

	states := []*ContainerState{}
	if err := json.Unmarshal(out, &states); err != nil {
		return nil, err
	}
	if len(states) != 1 {
		return nil, fmt.Errorf("expected one container from docker inspect, got %d", len(states))
	}
	return states[0], nil
}

// Logs fetches the last lines of a container's log.
func (d *Docker) Logs(containerID string, tail int) ([]byte, error) {
	args := []string{"logs"}
	if tail > 0 {
		args = append(args, "--tail", strconv.Itoa(tail))
	}
	args = append(args, containerID)

	out, err := d.Run("docker", args...)
	if err != nil {
		return nil, fmt.Errorf("docker logs failed: %v (%s)", err, out)
	}
	return out, nil
}
