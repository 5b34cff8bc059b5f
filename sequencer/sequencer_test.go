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

package sequencer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordedStep struct {
	dir  string
	name string
	args []string
}

func newRecordingSequencer(failOn string) (*Sequencer, *[]recordedStep) {
	steps := []recordedStep{}
	seq := New("/app/backend/webshop")
	seq.RunStep = func(dir string, name string, args ...string) error {
		steps = append(steps, recordedStep{dir: dir, name: name, args: args})
		for _, arg := range args {
			if arg == failOn {
				return fmt.Errorf("exit status 1")
			}
		}
		return nil
	}
	return seq, &steps
}

func unreachableSettings() DatabaseSettings {
	// port 1 is never a postgres
	return DatabaseSettings{
		Host:     "127.0.0.1",
		Port:     "1",
		User:     "shop",
		Password: "pw",
		Name:     "shopdb",
	}
}

func TestExecuteRunsStepsInOrder(t *testing.T) {
	seq, steps := newRecordingSequencer("")

	err := seq.Execute(context.Background(), DatabaseSettings{}, true)
	assert.NoError(t, err)

	assert.Len(t, *steps, 2)
	assert.Equal(t, "/app/backend/webshop", (*steps)[0].dir)
	assert.Equal(t, []string{"manage.py", "migrate", "--noinput"}, (*steps)[0].args)
	assert.Equal(t, []string{"manage.py", "collectstatic", "--noinput"}, (*steps)[1].args)
}

func TestExecuteIsRepeatable(t *testing.T) {
	seq, steps := newRecordingSequencer("")

	assert.NoError(t, seq.Execute(context.Background(), DatabaseSettings{}, true))
	assert.NoError(t, seq.Execute(context.Background(), DatabaseSettings{}, true))

	assert.Len(t, *steps, 4)
}

func TestExecuteAbortsAfterFailedMigration(t *testing.T) {
	seq, steps := newRecordingSequencer("migrate")

	err := seq.Execute(context.Background(), DatabaseSettings{}, true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrate failed")

	// no collectstatic after a failed migration
	assert.Len(t, *steps, 1)
}

func TestWaitForDatabaseGivesUp(t *testing.T) {
	seq, steps := newRecordingSequencer("")
	seq.Interval = time.Millisecond
	seq.Attempts = 2

	start := time.Now()
	err := seq.Execute(context.Background(), unreachableSettings(), false)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabaseTimeout))
	// bounded: way below the one minute the production budget allows
	assert.WithinDuration(t, start, time.Now(), 30*time.Second)

	// no migration attempt against an unreachable database
	assert.Len(t, *steps, 0)
}

func TestWaitForDatabaseHonorsContext(t *testing.T) {
	seq, _ := newRecordingSequencer("")
	seq.Interval = time.Second
	seq.Attempts = 60

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := seq.WaitForDatabase(ctx, unreachableSettings())
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	settings := DatabaseSettings{
		Host:     "db",
		Port:     "5432",
		User:     "shop",
		Password: "pw",
		Name:     "shopdb",
	}

	assert.Equal(t,
		"host=db port=5432 user=shop password=pw dbname=shopdb sslmode=disable connect_timeout=2",
		settings.DSN())
}

func TestSettingsFromEnv(t *testing.T) {
	env := map[string]string{
		"DJANGO_DB_HOST":     "db",
		"DJANGO_DB_PORT":     "5432",
		"DJANGO_DB_USER":     "shop",
		"DJANGO_DB_PASSWORD": "pw",
		"DJANGO_DB_NAME":     "shopdb",
	}

	settings := SettingsFromEnv(func(name string) string { return env[name] })

	assert.Equal(t, "db", settings.Host)
	assert.Equal(t, "shopdb", settings.Name)
}
