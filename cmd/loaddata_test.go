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

package cmd

import (
	"io/ioutil"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/webshop/shopctl/api"
	"github.com/webshop/shopctl/deployment"
)

func testDeployConfig() *api.DeployConfig {
	config := api.ExtendDefaultDeployConfig(&api.DeployConfig{})
	config.Restart.Proxy = "always"
	return config
}

func newScriptedDocker(containerID string, calls *[]string) *deployment.Docker {
	docker := deployment.NewDocker("docker-compose.yaml", "webshop")
	docker.Run = func(name string, args ...string) ([]byte, error) {
		*calls = append(*calls, name+" "+strings.Join(args, " "))
		if len(args) > 0 && args[0] == "compose" {
			return []byte(containerID + "\n"), nil
		}
		return []byte{}, nil
	}
	return docker
}

func TestRunLoaddataCmd(t *testing.T) {
	uploads, err := ioutil.TempDir("", "uploads")
	assert.NoError(t, err)
	defer os.RemoveAll(uploads)
	assert.NoError(t, ioutil.WriteFile(path.Join(uploads, "cover.jpg"), []byte("jpg"), 0644))

	var calls []string
	config := testDeployConfig()
	ctx := &loaddataCmdContext{
		docker:   newScriptedDocker("abc123", &calls),
		config:   config,
		service:  "app",
		fixture:  "fixtures/data.json",
		uploads:  uploads,
		waitApp:  false,
		attempts: 1,
		interval: time.Millisecond,
	}

	err = runLoaddataCmd(ctx)
	assert.NoError(t, err)

	assert.Equal(t, calls, []string{
		"docker compose -f docker-compose.yaml -p webshop ps -q app",
		"docker cp fixtures/data.json abc123:/tmp/data.json",
		"docker exec -w " + config.ManageDir + " abc123 python manage.py loaddata /tmp/data.json --ignorenonexistent",
		"docker cp " + uploads + "/. abc123:" + config.MediaRoot,
	})
}

func TestRunLoaddataCmdMissingUploads(t *testing.T) {
	var calls []string
	ctx := &loaddataCmdContext{
		docker:  newScriptedDocker("abc123", &calls),
		config:  testDeployConfig(),
		service: "app",
		fixture: "fixtures/data.json",
		uploads: "does/not/exist",
	}

	// Database rows still load when there is no media to seed.
	err := runLoaddataCmd(ctx)
	assert.NoError(t, err)
	assert.Len(t, calls, 3)
}

func TestRunLoaddataCmdNotRunning(t *testing.T) {
	var calls []string
	ctx := &loaddataCmdContext{
		docker:  newScriptedDocker("", &calls),
		config:  testDeployConfig(),
		service: "app",
		fixture: "fixtures/data.json",
	}

	err := runLoaddataCmd(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not running")
	assert.Len(t, calls, 1)
}
