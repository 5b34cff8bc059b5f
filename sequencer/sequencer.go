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
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"

	"github.com/webshop/shopctl/api"
	"github.com/webshop/shopctl/helper"
)

var logger = helper.GetSugarLogger([]string{"sequencer"})

// ExitDatabaseTimeout is the exit code of a container whose database never
// became reachable within the wait budget.
const ExitDatabaseTimeout = 69

// ErrDatabaseTimeout marks a database readiness wait that ran out of attempts.
var ErrDatabaseTimeout = errors.New("database wait deadline exceeded")

// DatabaseSettings carries the connection values of the target postgres.
type DatabaseSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// SettingsFromEnv reads the database settings from the same variables the
// Django settings module reads.
func SettingsFromEnv(getenv func(string) string) DatabaseSettings {
	return DatabaseSettings{
		Host:     getenv(api.EnvDbHost),
		Port:     getenv(api.EnvDbPort),
		User:     getenv(api.EnvDbUser),
		Password: getenv(api.EnvDbPassword),
		Name:     getenv(api.EnvDbName),
	}
}

func (s DatabaseSettings) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=2",
		s.Host, s.Port, s.User, s.Password, s.Name)
}

// StepRunner runs one startup step as a subprocess with output passed through.
type StepRunner func(dir string, name string, args ...string) error

func runStep(dir string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Sequencer performs the one-time startup actions of the app container:
// wait for the database, migrate, collect static assets, then hand over to
// the server process.
type Sequencer struct {
	Interval  time.Duration
	Attempts  uint64
	ManageDir string
	Python    string
	RunStep   StepRunner
}

func New(manageDir string) *Sequencer {
	return &Sequencer{
		Interval:  time.Second,
		Attempts:  60,
		ManageDir: manageDir,
		Python:    "python",
		RunStep:   runStep,
	}
}

// WaitForDatabase pings postgres at a fixed interval until it accepts
// connections or the attempt budget runs out. The budget is bounded: a
// database that never comes up fails the container with a distinct exit code
// instead of hanging it forever.
func (s *Sequencer) WaitForDatabase(ctx context.Context, settings DatabaseSettings) error {
	db, err := sql.Open("postgres", settings.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Infof("waiting for postgres at %s:%s", settings.Host, settings.Port)

	ping := func() error { return db.PingContext(ctx) }
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.Interval), s.Attempts), ctx)
	if err := backoff.Retry(ping, policy); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseTimeout, err)
	}

	logger.Info("postgres is ready")
	return nil
}

// Migrate applies the pending schema migrations. A partially initialized
// application must never begin serving traffic, so any failure aborts the
// startup sequence.
func (s *Sequencer) Migrate() error {
	logger.Info("applying database migrations")
	if err := s.RunStep(s.ManageDir, s.Python, "manage.py", "migrate", "--noinput"); err != nil {
		return fmt.Errorf("migrate failed: %v", err)
	}
	return nil
}

// CollectStatic materializes the static assets into the directory the
// reverse proxy serves.
func (s *Sequencer) CollectStatic() error {
	logger.Info("collecting static assets")
	if err := s.RunStep(s.ManageDir, s.Python, "manage.py", "collectstatic", "--noinput"); err != nil {
		return fmt.Errorf("collectstatic failed: %v", err)
	}
	return nil
}

// Execute runs the linear startup sequence: wait -> migrate -> collectstatic.
// Both Django commands are idempotent, re-running the sequence against an
// already initialized deployment is safe.
func (s *Sequencer) Execute(ctx context.Context, settings DatabaseSettings, skipWait bool) error {
	if skipWait {
		logger.Info("database wait skipped")
	} else if err := s.WaitForDatabase(ctx, settings); err != nil {
		return err
	}

	if err := s.Migrate(); err != nil {
		return err
	}
	return s.CollectStatic()
}

// Exec replaces the current process with the server command. No child, no
// supervision: signals and the exit code belong to the server afterwards.
func Exec(argv []string) error {
	binary, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}
	logger.Infof("handing over to %s", strings.Join(argv, " "))
	return syscall.Exec(binary, argv, os.Environ())
}
