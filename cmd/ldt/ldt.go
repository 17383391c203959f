// Copyright 2024 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/ldt/clog"
	_ "github.com/cayleygraph/ldt/clog/glog"
	"github.com/cayleygraph/ldt/cmd/ldt/command"
	"github.com/cayleygraph/ldt/internal/config"
	"github.com/cayleygraph/ldt/version"
)

var rootCmd = &cobra.Command{
	Use:   "ldt",
	Short: "Linked Data Templates processor.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if conf, _ := cmd.Flags().GetString("config"); conf != "" {
			viper.SetConfigFile(conf)
		}
		err := viper.ReadInConfig()
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && err != nil {
			return err
		}
		if conf := viper.ConfigFileUsed(); conf != "" {
			wd, _ := os.Getwd()
			if rel, _ := filepath.Rel(wd, conf); rel != "" && !strings.HasPrefix(rel, "..") {
				conf = rel
			}
			clog.Infof("using config file: %s", conf)
		}
		if n, err := cmd.Flags().GetInt("verbose"); err == nil && cmd.Flags().Changed("verbose") {
			clog.SetV(n)
		}
		return nil
	},
}

func init() {
	// set config names and paths
	viper.SetConfigName("ldt")
	viper.SetEnvPrefix("ldt")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.ldt/")
	viper.AddConfigPath("/etc/")

	rootCmd.AddCommand(
		command.NewHTTPCmd(),
		command.NewMatchCmd(),
		command.NewInsertDataCmd(),
		command.NewHealthCmd(),
		command.NewVersionCmd(),
	)
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to an explicit configuration file")
	rootCmd.PersistentFlags().IntP("verbose", "v", 0, "log verbosity level")

	rootCmd.PersistentFlags().String("ontology", "", "ontology file to load (\".gz\" supported, \"-\" for stdin)")
	rootCmd.PersistentFlags().String("ontology_iri", "", "ontology to use if the file declares more than one")
	rootCmd.PersistentFlags().String("ontology_format", "", "ontology file format instead of auto-detection")
	rootCmd.PersistentFlags().String("base", "", "base URI of template calls (derived from requests when empty)")

	viper.BindPFlag(config.KeyOntologyPath, rootCmd.PersistentFlags().Lookup("ontology"))
	viper.BindPFlag(config.KeyOntologyIRI, rootCmd.PersistentFlags().Lookup("ontology_iri"))
	viper.BindPFlag(config.KeyOntologyFormat, rootCmd.PersistentFlags().Lookup("ontology_format"))
	viper.BindPFlag(config.KeyHTTPBase, rootCmd.PersistentFlags().Lookup("base"))
}

func main() {
	// glog registers its flags on the standard flag set
	flag.CommandLine.Parse([]string{})
	flag.Set("logtostderr", "true")
	rootCmd.Version = version.String()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
