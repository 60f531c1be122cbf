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
	"os"
	"time"

	"github.com/ciao-project/ciao-bat/bat"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var workloadOpts = bat.WorkloadOptions{
	VMType: "qemu",
}

var workloadImageID string

// createWorkloadCmd represents the create-workload command
var createWorkloadCmd = &cobra.Command{
	Use:   "create-workload",
	Short: "Create a workload suitable for BAT",
	Long: `Defines a new workload on the cluster from the supplied options.
The workload definition is written as YAML and passed to ciao-cli workload
create with the admin credentials.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		if workloadImageID != "" {
			workloadOpts.Disks = []bat.Disk{
				{
					Bootable:  true,
					Ephemeral: true,
					Source: &bat.Source{
						Type: "image",
						ID:   workloadImageID,
					},
				},
			}
		}

		return cluster.CreateWorkload(context.Background(), workloadOpts)
	},
}

func init() {
	RootCmd.AddCommand(createWorkloadCmd)

	createWorkloadCmd.Flags().StringVar(&workloadOpts.Description, "description",
		"BAT VM Test", "description of the new workload")
	createWorkloadCmd.Flags().StringVar(&workloadOpts.VMType, "vm-type", "qemu",
		"hypervisor used to run instances of the workload")
	createWorkloadCmd.Flags().StringVar(&workloadOpts.FWType, "fw-type", "legacy",
		"firmware type used to boot the workload")
	createWorkloadCmd.Flags().IntVar(&workloadOpts.Defaults.VCPUs, "vcpus", 2,
		"number of vcpus given to each instance")
	createWorkloadCmd.Flags().IntVar(&workloadOpts.Defaults.MemMB, "mem", 128,
		"memory in MB given to each instance")
	createWorkloadCmd.Flags().StringVar(&workloadOpts.CloudConfigFile, "cloud-init",
		"", "path of a cloud-init file for the workload")
	createWorkloadCmd.Flags().StringVar(&workloadImageID, "image-id", "",
		"image the workload boots from")
}
