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
	"errors"
	"fmt"
	"log"
	"os"
	"path"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/webshop/shopctl/api"
	"github.com/webshop/shopctl/compose"
	"github.com/webshop/shopctl/templates"
	"github.com/webshop/shopctl/version"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init DESTINATION",
	Short: "Scaffold a new webshop deployment directory",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a destination to create")
		}

		dest := args[0]
		if _, err := os.Stat(dest); !os.IsNotExist(err) {
			return fmt.Errorf("destination %s already exists", dest)
		}

		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		dst := args[0]

		config, err := deployConfigFromInitFlags(cmd.Flags())
		if err != nil {
			log.Fatalln(err)
		}

		renderer := templates.NewRenderer()
		if err := createDeploymentFiles(renderer, dst, config); err != nil {
			log.Fatalln(err)
		}

		fmt.Printf("Deployment scaffolded in %s\n", dst)
		fmt.Printf("Edit %s before the first start, in particular the secret key and the database password.\n", path.Join(dst, ".env"))
	},
}

func deployConfigFromInitFlags(flags *pflag.FlagSet) (*api.DeployConfig, error) {
	name, err := flags.GetString("name")
	if err != nil {
		return nil, err
	}
	proxyRestart, err := flags.GetString("proxy-restart")
	if err != nil {
		return nil, err
	}

	config := api.ExtendDefaultDeployConfig(&api.DeployConfig{ProjectName: name})
	config.Restart.Proxy = proxyRestart
	config.CliVersion = version.CliVersion
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func createDeploymentFiles(renderer *templates.Renderer, dst string, config *api.DeployConfig) error {

	if err := renderer.GenerateFromTemplate(templates.ROOT_DEPLOY_YAML, path.Join(dst, "deploy.yaml"), config); err != nil {
		return err
	}

	if err := renderer.GenerateFromTemplate(templates.ROOT_ENV, path.Join(dst, ".env"), config); err != nil {
		return err
	}

	if err := renderer.GenerateFromTemplate(templates.ROOT_README, path.Join(dst, "README.md"), config); err != nil {
		return err
	}

	if err := renderer.GenerateFromTemplate(templates.ROOT_DOCKERIGNORE, path.Join(dst, ".dockerignore"), config); err != nil {
		return err
	}

	return generateDeploymentFiles(renderer, dst, config)
}

// generateDeploymentFiles renders the files `shopctl generate` keeps in sync
// with deploy.yaml: the Dockerfile, the compose manifest and the nginx
// configuration.
func generateDeploymentFiles(renderer *templates.Renderer, dst string, config *api.DeployConfig) error {

	if err := renderer.GenerateFromTemplate(templates.DOCKERFILE, path.Join(dst, "Dockerfile"), config); err != nil {
		return err
	}

	if err := renderer.GenerateFromTemplate(templates.NGINX_DEFAULT_CONF, path.Join(dst, "nginx/default.conf"), config); err != nil {
		return err
	}

	manifest := compose.Generate(config)
	if err := manifest.Validate(); err != nil {
		return err
	}

	content, err := manifest.Marshal()
	if err != nil {
		return err
	}
	return afero.WriteFile(renderer.Fs, path.Join(dst, config.ComposeFile), content, 0644)
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringP("name", "n", "webshop", "project name")
	initCmd.Flags().String("proxy-restart", "", "restart policy for the nginx service, e.g. \"always\" or \"no\"")
	initCmd.MarkFlagRequired("proxy-restart")
}
