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
	"strings"

	ignore "github.com/codeskyblue/dockerignore"
	"github.com/spf13/cobra"

	"github.com/webshop/shopctl/api"
	"github.com/webshop/shopctl/compose"
	"github.com/webshop/shopctl/deployment"
)

// buildCmd builds the images of the compose manifest that have a local build
// context, i.e. the Django app image.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the app image from the compose manifest",

	Run: func(cmd *cobra.Command, args []string) {
		config := deployConfigFromFlags(cmd)

		push, err := cmd.Flags().GetBool("push")
		if err != nil {
			log.Fatalln(err)
		}

		if err := checkUploadsIgnored(config, ".dockerignore"); err != nil {
			log.Fatalln(err)
		}

		manifest, err := compose.Load(config.ComposeFile)
		if err != nil {
			log.Fatalln(err)
		}
		if err := manifest.Validate(); err != nil {
			log.Fatalln(err)
		}

		docker := deployment.NewDocker(config.ComposeFile, config.ProjectName)
		if err := docker.BuildImages(manifest.ServicesWithBuild()); err != nil {
			log.Fatalln(err)
		}

		if push {
			if err := docker.PushImages(manifest); err != nil {
				log.Fatalln(err)
			}
		}
	},
}

// checkUploadsIgnored refuses to build when the user-uploaded media
// directories would end up inside the image. Seed uploads reach the media
// volume through "shopctl loaddata", never through the build context.
func checkUploadsIgnored(config *api.DeployConfig, ignoreFile string) error {
	patterns, err := ignore.ReadIgnoreFile(ignoreFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s is missing, run \"shopctl init\" or \"shopctl generate\" first", ignoreFile)
		}
		return err
	}

	dirs := []string{config.UploadsDir}
	// A media root under /app/ is part of the build context and must be
	// ignored too; anywhere else it cannot end up in the image at all.
	if inContext := strings.TrimPrefix(config.MediaRoot, "/app/"); inContext != config.MediaRoot {
		dirs = append(dirs, inContext)
	}

	for _, dir := range dirs {
		ignored, err := ignore.Matches(dir, patterns)
		if err != nil {
			return err
		}
		if !ignored {
			return fmt.Errorf("%s is not covered by %s, uploads would leak into the image", dir, ignoreFile)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().Bool("push", false, "push the built images to their registry")
}
