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

// Package suite defines the fixed sequence of Basic Acceptance Tests and
// runs them against a cluster, producing a TAP report.  The tests are
// independent of each other but they all share the external cluster, so
// they are run strictly one at a time; the suite is not parallelizable
// without tenant isolation, which the harness does not provide.
package suite

import (
	"context"
	"time"

	"github.com/ciao-project/ciao-bat/bat"
	"github.com/ciao-project/ciao-bat/tap"
)

// Options carries the suite level settle delays.  The zero value is
// replaced by the defaults the original harness used.
type Options struct {
	// TeardownSettle is how long the suite pauses after each test's
	// cleanup before starting the next test.
	TeardownSettle time.Duration

	// ListSettle is how long a test waits after launching an instance
	// before listing it.
	ListSettle time.Duration
}

func (o Options) withDefaults() Options {
	if o.TeardownSettle == 0 {
		o.TeardownSettle = 2 * time.Second
	}
	if o.ListSettle == 0 {
		o.ListSettle = 5 * time.Second
	}
	return o
}

// Case is a single BAT scenario assertion.  Run returns nil if the
// assertion holds.
type Case struct {
	Name        string
	Description string
	Run         func(ctx context.Context, c *bat.Cluster, opts Options) error
}

// sleep pauses for the given duration, returning early if the context is
// cancelled.
func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// Run executes the given cases in order against the cluster and returns
// the accumulated report.  After every case, pass or fail, the suite
// deletes all instances belonging to the test tenant and waits for the
// teardown settle time; cleanup failures are folded into the case's
// diagnostics but do not change its outcome.
func Run(ctx context.Context, c *bat.Cluster, cases []Case, opts Options) *tap.Report {
	opts = opts.withDefaults()
	report := &tap.Report{}

	for _, tc := range cases {
		err := tc.Run(ctx, c, opts)

		diagnostic := ""
		if err != nil {
			diagnostic = err.Error()
		}

		if cleanupErr := c.DeleteAllInstances(ctx); cleanupErr != nil {
			if diagnostic != "" {
				diagnostic += "\n"
			}
			diagnostic += "teardown: " + cleanupErr.Error()
		}
		sleep(ctx, opts.TeardownSettle)

		report.Record(tap.Result{
			Description: tc.Description,
			Ok:          err == nil,
			Diagnostic:  diagnostic,
		})
	}

	return report
}
