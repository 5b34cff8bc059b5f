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
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/webshop/shopctl/api"
	"github.com/webshop/shopctl/helper"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Deployment harness for the webshop",
	Long: `shopctl scaffolds, starts and feeds the containerized webshop deployment:
gunicorn behind nginx, a postgres database and shared static/media volumes.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&helper.CfgFile, "config", "", "config file (default is $HOME/.shopctl.toml)")

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "verbose output")

	rootCmd.PersistentFlags().String("env", "local", "named deployment environment from the global config")
	viper.BindPFlag("env", rootCmd.PersistentFlags().Lookup("env"))

	rootCmd.PersistentFlags().StringP("file", "f", "deploy.yaml", "deployment configuration file")
}

// initConfig reads in the global config file and ENV variables if set.
func initConfig() {
	configName := ".shopctl"

	if helper.CfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(helper.CfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".shopctl" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(configName)

		helper.CfgFile = path.Join(home, configName+".toml")
	}

	viper.SetEnvPrefix("shop")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); Verbose && err != nil {
		log.Println(err)
	}

	if Verbose {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// loadDotenv exports the variables of an env file into the process
// environment. Values already present in the environment win.
func loadDotenv(filename string) error {
	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, present := os.LookupEnv(name); !present {
			os.Setenv(name, v.GetString(key))
		}
	}
	return nil
}

func deployConfigFromFlags(cmd *cobra.Command) *api.DeployConfig {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		log.Fatalln(err)
	}

	// The global config can pin a deploy.yaml per named environment, the -f
	// flag wins when given explicitly.
	if !cmd.Flags().Changed("file") {
		if envFile := helper.CurrentConfig("file"); envFile != "" {
			file = envFile
		}
	}

	config, err := api.CreateDeployConfigFromYaml(file)
	if err != nil {
		log.Fatalln(err)
	}
	return config
}
