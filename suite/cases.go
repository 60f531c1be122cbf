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

package suite

import (
	"context"
	"fmt"
	"strings"

	"github.com/ciao-project/ciao-bat/bat"
)

// Cases returns the standard BAT sequence.  The order matches the original
// release acceptance run and each case stands alone: no case depends on
// state left behind by an earlier one.
func Cases() []Case {
	return []Case{
		{
			Name:        "tenants",
			Description: "Get all tenants",
			Run:         getTenants,
		},
		{
			Name:        "cluster-status",
			Description: "Confirm that the cluster is ready",
			Run:         clusterStatus,
		},
		{
			Name:        "workloads",
			Description: "Get all available workloads",
			Run:         getWorkloads,
		},
		{
			Name:        "start-all-workloads",
			Description: "Start one instance of all workloads",
			Run:         startAllWorkloads,
		},
		{
			Name:        "cncis",
			Description: "Start a random workload, then get CNCI information",
			Run:         getCNCIs,
		},
		{
			Name:        "instances",
			Description: "Start a random workload, then make sure it's listed",
			Run:         getInstances,
		},
		{
			Name:        "delete-all-instances",
			Description: "Start a random workload, then delete it",
			Run:         deleteAllInstances,
		},
	}
}

func getTenants(ctx context.Context, c *bat.Cluster, opts Options) error {
	tenants, err := c.Tenants(ctx)
	if err != nil {
		return err
	}
	if len(tenants) == 0 {
		return fmt.Errorf("no tenants found")
	}
	return nil
}

func clusterStatus(ctx context.Context, c *bat.Cluster, opts Options) error {
	status, err := c.Status(ctx)
	if err != nil {
		return err
	}
	if !status.AllReady() {
		return fmt.Errorf("cluster not ready: %s of %s nodes ready",
			status.Ready, status.Total)
	}
	return nil
}

func getWorkloads(ctx context.Context, c *bat.Cluster, opts Options) error {
	workloads, err := c.Workloads(ctx)
	if err != nil {
		return err
	}
	if len(workloads) == 0 {
		return fmt.Errorf("no workloads found")
	}
	return nil
}

func startAllWorkloads(ctx context.Context, c *bat.Cluster, opts Options) error {
	return c.LaunchAllWorkloads(ctx, 1)
}

func getCNCIs(ctx context.Context, c *bat.Cluster, opts Options) error {
	if err := c.StartRandomWorkload(ctx, 1); err != nil {
		return err
	}

	cncis, err := c.CNCIs(ctx)
	if err != nil {
		return err
	}
	if len(cncis) == 0 {
		return fmt.Errorf("no CNCIs found")
	}
	return nil
}

func getInstances(ctx context.Context, c *bat.Cluster, opts Options) error {
	if err := c.StartRandomWorkload(ctx, 1); err != nil {
		return err
	}

	sleep(ctx, opts.ListSettle)

	instances, err := c.Instances(ctx)
	if err != nil {
		return err
	}
	if len(instances) != 1 {
		return fmt.Errorf("expected 1 instance, found %d", len(instances))
	}
	return nil
}

func deleteAllInstances(ctx context.Context, c *bat.Cluster, opts Options) error {
	if err := c.StartRandomWorkload(ctx, 1); err != nil {
		return err
	}

	if err := c.DeleteAllInstances(ctx); err != nil {
		return err
	}

	instances, err := c.Instances(ctx)
	if err != nil {
		return err
	}
	if len(instances) != 0 {
		return fmt.Errorf("expected 0 instances, found %d", len(instances))
	}
	return nil
}

// SSHConnectivityCase returns an optional case that launches a random
// workload and verifies the resulting instance accepts an SSH login with
// the given credentials.  It is only added to the run when the operator
// asks for it, as it requires workloads whose images install a known
// user and password.
func SSHConnectivityCase(user, password string) Case {
	return Case{
		Name:        "ssh-connectivity",
		Description: "Start a random workload, then connect to it over SSH",
		Run: func(ctx context.Context, c *bat.Cluster, opts Options) error {
			if err := c.StartRandomWorkload(ctx, 1); err != nil {
				return err
			}

			instances, err := c.Instances(ctx)
			if err != nil {
				return err
			}
			if len(instances) == 0 {
				return fmt.Errorf("no instances found")
			}

			out, err := bat.SSHCommand(ctx, bat.SSHTarget{
				IP:       instances[0].PrivateIP,
				User:     user,
				Password: password,
			}, "/usr/bin/whoami")
			if err != nil {
				return err
			}

			if strings.TrimSpace(out) != user {
				return fmt.Errorf("expected login as %q, got %q", user,
					strings.TrimSpace(out))
			}
			return nil
		},
	}
}
