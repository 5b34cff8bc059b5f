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
	"log"
	"os"
	"path"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/webshop/shopctl/api"
	"github.com/webshop/shopctl/deployment"
)

type loaddataCmdContext struct {
	docker   *deployment.Docker
	client   *resty.Client
	config   *api.DeployConfig
	service  string
	fixture  string
	uploads  string
	waitApp  bool
	attempts uint64
	interval time.Duration
}

// loaddataCmd seeds a running deployment with sample content: a Django
// fixture for the database rows and an uploads directory for the matching
// media files.
var loaddataCmd = &cobra.Command{
	Use:   "loaddata",
	Short: "Load the sample fixture and media files into a running deployment",

	Run: func(cmd *cobra.Command, args []string) {
		config := deployConfigFromFlags(cmd)

		service, err := cmd.Flags().GetString("service")
		if err != nil {
			log.Fatalln(err)
		}
		fixture, err := cmd.Flags().GetString("fixture")
		if err != nil {
			log.Fatalln(err)
		}
		uploads, err := cmd.Flags().GetString("uploads")
		if err != nil {
			log.Fatalln(err)
		}
		waitApp, err := cmd.Flags().GetBool("wait-app")
		if err != nil {
			log.Fatalln(err)
		}
		appURL, err := cmd.Flags().GetString("app-url")
		if err != nil {
			log.Fatalln(err)
		}

		if fixture == "" {
			fixture = config.Fixture
		}
		if uploads == "" {
			uploads = config.UploadsDir
		}
		if appURL == "" {
			appURL = fmt.Sprintf("http://localhost:%d", config.ProxyPort)
		}

		ctx := &loaddataCmdContext{
			docker:   deployment.NewDocker(config.ComposeFile, config.ProjectName),
			client:   deployment.AppClient(appURL, Verbose),
			config:   config,
			service:  service,
			fixture:  fixture,
			uploads:  uploads,
			waitApp:  waitApp,
			attempts: 30,
			interval: time.Second,
		}

		if err := runLoaddataCmd(ctx); err != nil {
			log.Fatalln(err)
		}
	},
}

func runLoaddataCmd(ctx *loaddataCmdContext) error {
	containerID, err := ctx.docker.ContainerID(ctx.service)
	if err != nil {
		return err
	}
	if containerID == "" {
		return fmt.Errorf("service %s is not running, start the deployment first", ctx.service)
	}

	if ctx.waitApp {
		if err := deployment.WaitForApp(ctx.client, ctx.attempts, ctx.interval); err != nil {
			return err
		}
	}

	fixtureInContainer := path.Join("/tmp", path.Base(ctx.fixture))
	if err := ctx.docker.CopyTo(containerID, ctx.fixture, fixtureInContainer); err != nil {
		return err
	}

	// --ignorenonexistent lets the same fixture survive model fields that
	// were since removed.
	out, err := ctx.docker.Exec(containerID, ctx.config.ManageDir,
		"python", "manage.py", "loaddata", fixtureInContainer, "--ignorenonexistent")
	if err != nil {
		return fmt.Errorf("loaddata failed: %v\n%s", err, out)
	}

	if _, err := os.Stat(ctx.uploads); err != nil {
		if os.IsNotExist(err) {
			// Fixtures without media are fine, the database rows are loaded.
			return nil
		}
		return err
	}

	// Trailing /. copies the directory contents, not the directory itself.
	return ctx.docker.CopyTo(containerID, ctx.uploads+"/.", ctx.config.MediaRoot)
}

func init() {
	rootCmd.AddCommand(loaddataCmd)

	loaddataCmd.Flags().String("service", "app", "service whose container receives the data")
	loaddataCmd.Flags().String("fixture", "", "fixture file to load (default from deploy.yaml)")
	loaddataCmd.Flags().String("uploads", "", "uploads directory to copy into the media volume (default from deploy.yaml)")
	loaddataCmd.Flags().Bool("wait-app", false, "wait for the app to answer HTTP before loading")
	loaddataCmd.Flags().String("app-url", "", "base URL used by --wait-app (default http://localhost:PROXY_PORT)")
}
