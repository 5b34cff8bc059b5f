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
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/webshop/shopctl/compose"
	"github.com/webshop/shopctl/deployment"
)

var colorize = []func(format string, a ...interface{}) string{
	color.RedString,
	color.GreenString,
	color.YellowString,
	color.BlueString,
	color.MagentaString,
	color.CyanString,
	color.WhiteString,
}

var coloredService = make(map[string]func(format string, a ...interface{}) string)

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs [SERVICE...]",
	Short: "Fetch logs of the deployment's containers",
	Run: func(cmd *cobra.Command, args []string) {
		config := deployConfigFromFlags(cmd)

		tail, err := cmd.Flags().GetInt("tail")
		if err != nil {
			log.Fatalln(err)
		}

		manifest, err := compose.Load(config.ComposeFile)
		if err != nil {
			log.Fatalln(err)
		}

		services := args
		if len(services) == 0 {
			services = manifest.ServiceNames()
		}

		docker := deployment.NewDocker(config.ComposeFile, config.ProjectName)
		for _, service := range services {
			if _, ok := manifest.Services[service]; !ok {
				log.Fatalf("unknown service %s", service)
			}

			id, err := docker.ContainerID(service)
			if err != nil {
				log.Fatalln(err)
			}
			if id == "" {
				fmt.Printf("%s | not running\n", getColoredService(service))
				continue
			}

			out, err := docker.Logs(id, tail)
			if err != nil {
				log.Fatalln(err)
			}
			prefix := getColoredService(service)
			for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
				fmt.Printf("%s | %s\n", prefix, line)
			}
		}
	},
}

func getColoredService(service string) string {
	colorIdx := int(math.Mod(float64(len(coloredService)), float64(len(colorize))))

	if _, ok := coloredService[service]; !ok {
		coloredService[service] = colorize[colorIdx]
	}

	return coloredService[service](service)
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().Int("tail", 100, "number of lines to show from the end of each log")
}
