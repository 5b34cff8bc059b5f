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
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/webshop/shopctl/compose"
	"github.com/webshop/shopctl/deployment"
)

func TestFormatStatus(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	manifest := compose.Generate(testDeployConfig())

	inspected := fmt.Sprintf(`[{
		"Name": "/webshop_db_1",
		"State": {"Status": "running", "StartedAt": "2023-05-04T10:00:00Z"},
		"Config": {"Image": "postgres:%s-alpine"}
	}]`, testDeployConfig().PostgresVersion)

	docker := deployment.NewDocker("docker-compose.yaml", "webshop")
	docker.Run = func(name string, args ...string) ([]byte, error) {
		call := name + " " + strings.Join(args, " ")
		switch {
		case strings.HasSuffix(call, "ps -q db"):
			return []byte("dbdbdb\n"), nil
		case strings.HasPrefix(call, "docker inspect dbdbdb"):
			return []byte(inspected), nil
		default:
			// app and nginx have no running container
			return []byte{}, nil
		}
	}

	out, err := formatStatus(docker, manifest)
	assert.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "SERVICE")
	assert.Contains(t, lines[1], "db")
	assert.Contains(t, lines[1], "running")
	assert.Contains(t, lines[1], "postgres:")
	assert.Contains(t, lines[2], "not running")
	assert.Contains(t, lines[3], "not running")
}
