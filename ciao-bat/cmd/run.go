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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ciao-project/ciao-bat/bat"
	"github.com/ciao-project/ciao-bat/suite"
	"github.com/ciao-project/ciao-bat/tap"
	"github.com/intel/tfortools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	reportPath  string
	summaryTmpl string
	sshUser     string
	sshPassword string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Basic Acceptance Tests",
	Long: `Runs the fixed BAT sequence against the cluster ciao-cli is
configured to talk to and writes the results to a TAP report file.  The
process exits with a non-zero status if any test fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBAT()
	},
}

func init() {
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&reportPath, "report", tap.DefaultReportPath,
		"path of the TAP report file")
	runCmd.Flags().StringVarP(&summaryTmpl, "template", "f", "",
		"text/template used to format the results written to stdout"+
			tfortools.GenerateUsageUndecorated([]tap.Result{}))
	runCmd.Flags().StringVar(&sshUser, "ssh-user", "",
		"enable the SSH connectivity test, logging in as this user")
	runCmd.Flags().StringVar(&sshPassword, "ssh-password", "",
		"password for the SSH connectivity test")
}

func runBAT() error {
	if err := bat.CheckEnv(os.Environ(), bat.RequiredEnv); err != nil {
		fatalf("%v\n", err)
	}

	cfg := bat.Config{
		CLIPath:        viper.GetString("cli"),
		CommandTimeout: time.Duration(viper.GetInt("command_timeout")) * time.Second,
		RetryCount:     viper.GetInt("cluster_timeout"),
	}

	cluster, err := bat.New(cfg, os.Environ())
	if err != nil {
		return err
	}

	cases := suite.Cases()
	if sshUser != "" {
		cases = append(cases, suite.SSHConnectivityCase(sshUser, sshPassword))
	}

	infof("running %d tests with %s\n", len(cases), cfg.CLIPath)

	report := suite.Run(context.Background(), cluster, cases, suite.Options{})

	if err := writeReport(report); err != nil {
		return err
	}

	if summaryTmpl != "" {
		err := tfortools.OutputToTemplate(os.Stdout, "bat-summary",
			summaryTmpl, report.Results(), nil)
		if err != nil {
			errorf("unable to format summary: %v\n", err)
		}
	}

	if !report.Passed() {
		return fmt.Errorf("BAT failed, see %s", reportPath)
	}

	infof("all tests passed\n")
	return nil
}

func writeReport(report *tap.Report) error {
	f, err := os.Create(reportPath)
	if err != nil {
		return err
	}

	err = report.Write(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
