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

package bat

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultCommandTimeout bounds a single ciao-cli invocation.
	DefaultCommandTimeout = 300 * time.Second

	// DefaultRetryCount is the number of times a cluster state poll is
	// attempted before the harness gives up.
	DefaultRetryCount = 60

	// deleteAckMarker is the acknowledgment ciao-cli prints when an
	// instance delete -all request has been accepted.
	deleteAckMarker = "os-delete"
)

// pollInterval is the fixed delay between cluster state polls.
const pollInterval = time.Second

// Config carries the tunable knobs of the harness.  It is threaded
// explicitly through New rather than held in package level variables so
// that concurrent harnesses with different settings cannot interfere.
type Config struct {
	// CLIPath is the ciao-cli binary to exec.  Defaults to "ciao-cli".
	CLIPath string

	// CommandTimeout bounds each ciao-cli invocation.
	CommandTimeout time.Duration

	// RetryCount is the attempt budget for cluster state polls.
	RetryCount int
}

// Cluster provides the BAT operations on a running ciao cluster.  All
// operations are performed by execing ciao-cli with either the user or the
// admin credentials derived from the base environment at construction time.
type Cluster struct {
	runner     Runner
	user       Credentials
	admin      Credentials
	retryCount int
}

// New creates a Cluster from the given configuration and base process
// environment.  It fails with a ConfigError naming the first missing
// variable if any of the required CIAO_* variables is absent.
func New(cfg Config, base []string) (*Cluster, error) {
	if err := CheckEnv(base, RequiredEnv); err != nil {
		return nil, err
	}

	admin, err := AdminCredentials(base)
	if err != nil {
		return nil, err
	}

	if cfg.CommandTimeout == 0 {
		cfg.CommandTimeout = DefaultCommandTimeout
	}
	if cfg.RetryCount == 0 {
		cfg.RetryCount = DefaultRetryCount
	}

	return &Cluster{
		runner: Runner{
			Path:    cfg.CLIPath,
			Timeout: cfg.CommandTimeout,
		},
		user:       UserCredentials(base),
		admin:      admin,
		retryCount: cfg.RetryCount,
	}, nil
}

// Workloads retrieves the list of workload templates defined on the
// cluster by calling ciao-cli workload list.
func (c *Cluster) Workloads(ctx context.Context) ([]Workload, error) {
	lines, err := c.runner.Run(ctx, c.user, "workload", "list")
	if err != nil {
		return nil, err
	}
	return ParseWorkloads(lines)
}

// Tenants retrieves the list of all tenants known to the identity service
// by calling ciao-cli tenant list -all with the admin credentials.
func (c *Cluster) Tenants(ctx context.Context) ([]Tenant, error) {
	lines, err := c.runner.Run(ctx, c.admin, "tenant", "list", "-all")
	if err != nil {
		return nil, err
	}
	return ParseTenants(lines)
}

// Instances retrieves the instances created for the test tenant by calling
// ciao-cli instance list -detail.
func (c *Cluster) Instances(ctx context.Context) ([]Instance, error) {
	lines, err := c.runner.Run(ctx, c.user, "instance", "list", "-detail")
	if err != nil {
		return nil, err
	}
	return ParseInstances(lines)
}

// CNCIs retrieves the CNCIs present on the cluster by calling ciao-cli
// node list -cnci with the admin credentials.
func (c *Cluster) CNCIs(ctx context.Context) ([]CNCI, error) {
	lines, err := c.runner.Run(ctx, c.admin, "node", "list", "-cnci")
	if err != nil {
		return nil, err
	}
	return ParseCNCIs(lines)
}

// Status retrieves the cluster node counts by calling ciao-cli node status
// with the admin credentials.
func (c *Cluster) Status(ctx context.Context) (NodeStatus, error) {
	lines, err := c.runner.Run(ctx, c.admin, "node", "status")
	if err != nil {
		return NodeStatus{}, err
	}
	return ParseNodeStatus(lines)
}

// instanceActive reports whether the instance with the given UUID is
// currently listed with "active" status.  Any failure to retrieve or parse
// the instance list counts as not active; the surrounding poll will retry.
func (c *Cluster) instanceActive(ctx context.Context, uuid string) bool {
	instances, err := c.Instances(ctx)
	if err != nil {
		return false
	}

	for _, i := range instances {
		if i.UUID == uuid {
			return i.Status == "active"
		}
	}
	return false
}

// LaunchWorkload creates num instances of the given workload and waits for
// each of them to reach "active" status.  The created instance UUIDs are
// parsed from the ciao-cli instance add output.  The wait is sequential
// and short-circuits: if one instance fails to become active within the
// poll budget an error is returned without waiting for the rest.
func (c *Cluster) LaunchWorkload(ctx context.Context, workload string, num int) error {
	lines, err := c.runner.Run(ctx, c.user, "instance", "add",
		"-workload", workload, "-instances", strconv.Itoa(num))
	if err != nil {
		return err
	}

	uuids, err := ParseCreatedInstances(lines)
	if err != nil {
		return err
	}

	for _, uuid := range uuids {
		active := PollUntil(ctx, func() bool {
			return c.instanceActive(ctx, uuid)
		}, pollInterval, c.retryCount)
		if !active {
			return fmt.Errorf("instance %s failed to become active", uuid)
		}
	}

	return nil
}

// LaunchAllWorkloads launches num instances of every workload defined on
// the cluster.  The launches are sequential and fail fast: an empty
// workload list is an error, and the first launch failure aborts the
// remaining workloads.
func (c *Cluster) LaunchAllWorkloads(ctx context.Context, num int) error {
	workloads, err := c.Workloads(ctx)
	if err != nil {
		return err
	}

	if len(workloads) == 0 {
		return fmt.Errorf("no workloads defined")
	}

	for _, w := range workloads {
		if err := c.LaunchWorkload(ctx, w.UUID, num); err != nil {
			return errors.Wrapf(err, "failed to launch workload %s", w.UUID)
		}
	}

	return nil
}

// StartRandomWorkload launches num instances of a workload selected
// uniformly at random from the cluster's workload list.  An empty workload
// list is an error.
func (c *Cluster) StartRandomWorkload(ctx context.Context, num int) error {
	workloads, err := c.Workloads(ctx)
	if err != nil {
		return err
	}

	if len(workloads) == 0 {
		return fmt.Errorf("no workloads defined")
	}

	return c.LaunchWorkload(ctx, workloads[rand.Intn(len(workloads))].UUID, num)
}

// DeleteAllInstances deletes every instance belonging to the test tenant
// and waits for the instance list to empty.  The delete request is only
// considered accepted if the first line of ciao-cli output begins with the
// "os-delete" acknowledgment marker; this mirrors the contract the
// original harness relied on (see DESIGN.md for the known quirks of this
// check).
func (c *Cluster) DeleteAllInstances(ctx context.Context) error {
	lines, err := c.runner.Run(ctx, c.user, "instance", "delete", "-all")
	if err != nil {
		return err
	}

	if len(lines) == 0 || !strings.HasPrefix(lines[0], deleteAckMarker) {
		return fmt.Errorf("delete request not acknowledged: %q",
			strings.Join(lines, "\n"))
	}

	deleted := PollUntil(ctx, func() bool {
		instances, err := c.Instances(ctx)
		return err == nil && len(instances) == 0
	}, pollInterval, c.retryCount)
	if !deleted {
		return fmt.Errorf("instances still present after delete")
	}

	return nil
}
