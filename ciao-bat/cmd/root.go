//
// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func infof(format string, args ...interface{}) {
	if glog.V(1) {
		glog.InfoDepth(1, fmt.Sprintf("ciao-bat INFO: "+format, args...))
	}
}

func errorf(format string, args ...interface{}) {
	glog.ErrorDepth(1, fmt.Sprintf("ciao-bat ERROR: "+format, args...))
}

func fatalf(format string, args ...interface{}) {
	glog.FatalDepth(1, fmt.Sprintf("ciao-bat FATAL: "+format, args...))
}

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "ciao-bat",
	Long: `
Basic Acceptance Tests for a ciao cluster.

ciao-bat drives a running cluster through the ciao-cli command, asserts
expected cluster behaviour and writes the results as a TAP report.  The
following environment variables must be set before any test can run:
CIAO_IDENTITY, CIAO_CONTROLLER, CIAO_USERNAME, CIAO_PASSWORD,
CIAO_ADMIN_USERNAME and CIAO_ADMIN_PASSWORD.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.ciao-bat.yaml)")
	RootCmd.PersistentFlags().Int("command-timeout", 300,
		"seconds to wait for a ciao-cli command to complete")
	RootCmd.PersistentFlags().Int("cluster-timeout", 60,
		"number of times to poll for an expected cluster state")
	RootCmd.PersistentFlags().String("cli", "ciao-cli",
		"path of the ciao-cli binary to exec")

	_ = viper.BindPFlag("command_timeout", RootCmd.PersistentFlags().Lookup("command-timeout"))
	_ = viper.BindPFlag("cluster_timeout", RootCmd.PersistentFlags().Lookup("cluster-timeout"))
	_ = viper.BindPFlag("cli", RootCmd.PersistentFlags().Lookup("cli"))

	// glog's flags, -v and friends, live on the standard flag set.
	RootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
}

// initConfig reads in the config file and matching environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".ciao-bat")
	}

	viper.SetEnvPrefix("ciao_bat")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		infof("Using config file: %s\n", viper.ConfigFileUsed())
	}
}
