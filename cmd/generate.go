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

	"github.com/spf13/cobra"

	"github.com/webshop/shopctl/helper"
	"github.com/webshop/shopctl/templates"
)

// generateCmd re-renders the deployment files from deploy.yaml. It is the
// command to run after editing versions, ports or paths in the
// configuration.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate Dockerfile, compose manifest and nginx config from deploy.yaml",

	Run: func(cmd *cobra.Command, args []string) {
		config := deployConfigFromFlags(cmd)

		if Verbose {
			fmt.Println(helper.PrettyPrint(config))
		}

		renderer := templates.NewRenderer()
		helper.CheckError(generateDeploymentFiles(renderer, ".", config))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
