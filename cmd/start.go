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
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/webshop/shopctl/api"
	"github.com/webshop/shopctl/helper"
	"github.com/webshop/shopctl/sequencer"
)

// startCmd is the container entrypoint. It waits for postgres, applies the
// migrations, collects the static files and then replaces itself with the
// server command given after "--".
var startCmd = &cobra.Command{
	Use:   "start -- COMMAND [ARGS...]",
	Short: "Prepare the Django app and exec the server process",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires the server command to exec, after --")
		}
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		logger := helper.GetSugarLogger([]string{"start"})
		defer logger.Sync()

		envFile, err := cmd.Flags().GetString("env-file")
		if err != nil {
			log.Fatalln(err)
		}
		manageDir, err := cmd.Flags().GetString("manage-dir")
		if err != nil {
			log.Fatalln(err)
		}
		interval, err := cmd.Flags().GetDuration("wait-interval")
		if err != nil {
			log.Fatalln(err)
		}
		attempts, err := cmd.Flags().GetUint64("wait-attempts")
		if err != nil {
			log.Fatalln(err)
		}
		noWait, err := cmd.Flags().GetBool("no-wait")
		if err != nil {
			log.Fatalln(err)
		}

		if envFile != "" {
			if err := loadDotenv(envFile); err != nil {
				logger.Debugw("no usable env file, relying on the process environment", "file", envFile, "error", err)
			}
			// DJANGO_LOGLEVEL may have just arrived with the env file.
			helper.RefreshLogLevel()
		}

		debug := api.DebugEnabled(os.Getenv(api.EnvDebug))
		if !debug {
			if missing := api.CheckEnv(os.LookupEnv); len(missing) > 0 {
				logger.Fatalw("incomplete environment", "missing", strings.Join(missing, ", "))
			}
		}

		seq := sequencer.New(manageDir)
		seq.Interval = interval
		seq.Attempts = attempts

		// Debug deployments run Django on sqlite, there is no database
		// container to wait for.
		skipWait := noWait || debug
		settings := sequencer.SettingsFromEnv(os.Getenv)

		if err := seq.Execute(context.Background(), settings, skipWait); err != nil {
			if errors.Is(err, sequencer.ErrDatabaseTimeout) {
				logger.Errorw("giving up on the database", "error", err)
				logger.Sync()
				os.Exit(sequencer.ExitDatabaseTimeout)
			}
			logger.Fatalw("startup sequence failed", "error", err)
		}

		logger.Sync()
		if err := sequencer.Exec(args); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().String("env-file", "", "env file to export before the sequence, process environment wins")
	startCmd.Flags().String("manage-dir", "/app/backend/webshop", "directory holding manage.py")
	startCmd.Flags().Duration("wait-interval", time.Second, "delay between database connection attempts")
	startCmd.Flags().Uint64("wait-attempts", 60, "database connection attempts before giving up")
	startCmd.Flags().Bool("no-wait", false, "skip the database readiness wait")
}
