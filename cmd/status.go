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
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"

	"github.com/webshop/shopctl/compose"
	"github.com/webshop/shopctl/deployment"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the deployment's services",

	Run: func(cmd *cobra.Command, args []string) {
		config := deployConfigFromFlags(cmd)

		manifest, err := compose.Load(config.ComposeFile)
		if err != nil {
			log.Fatalln(err)
		}

		docker := deployment.NewDocker(config.ComposeFile, config.ProjectName)
		out, err := formatStatus(docker, manifest)
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Println(out)
	},
}

func formatStatus(docker *deployment.Docker, manifest *compose.Manifest) (string, error) {
	var output []string
	output = append(output, strings.Join([]string{"SERVICE", "STATUS", "IMAGE", "STARTED"}, "|"))

	for _, service := range manifest.ServiceNames() {
		id, err := docker.ContainerID(service)
		if err != nil {
			return "", err
		}
		if id == "" {
			row := []string{service, color.RedString("not running"), "", ""}
			output = append(output, strings.Join(row, "|"))
			continue
		}

		state, err := docker.Inspect(id)
		if err != nil {
			return "", err
		}

		status := state.State.Status
		if status == "running" {
			status = color.GreenString(status)
		} else {
			status = color.YellowString(status)
		}

		row := []string{
			service,
			status,
			state.Config.Image,
			humanize.Time(state.State.StartedAt),
		}
		output = append(output, strings.Join(row, "|"))
	}

	return columnize.SimpleFormat(output), nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
