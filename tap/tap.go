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

// Package tap implements the small subset of the Test Anything Protocol
// needed to report BAT results: a version header, a plan line, one ok or
// not ok line per test and "#" prefixed diagnostics.
package tap

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// DefaultReportPath is where the BAT report is written unless the caller
// chooses otherwise.
const DefaultReportPath = "./report.tap"

// Result records the outcome of a single test.
type Result struct {
	// Description appears after the test number on the ok/not ok line.
	Description string

	// Ok is true if the test passed.
	Ok bool

	// Diagnostic holds free-form failure detail.  It is emitted as "#"
	// comment lines following the result and never parsed.
	Diagnostic string
}

// Report accumulates test results in the order they finished.
type Report struct {
	results []Result
}

// Record appends a test result to the report.
func (r *Report) Record(res Result) {
	r.results = append(r.results, res)
}

// Passed reports whether every recorded result was ok.  An empty report
// passes.
func (r *Report) Passed() bool {
	for _, res := range r.results {
		if !res.Ok {
			return false
		}
	}
	return true
}

// Results returns the recorded results in completion order.
func (r *Report) Results() []Result {
	return r.results
}

// Write emits the report in TAP format.  Test numbers are assigned from
// the recording order, starting at 1.
func (r *Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "TAP version 13\n1..%d\n", len(r.results)); err != nil {
		return errors.Wrap(err, "failed to write TAP header")
	}

	for i, res := range r.results {
		status := "ok"
		if !res.Ok {
			status = "not ok"
		}

		if _, err := fmt.Fprintf(w, "%s %d - %s\n", status, i+1, res.Description); err != nil {
			return errors.Wrap(err, "failed to write TAP result")
		}

		if res.Diagnostic == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(res.Diagnostic, "\n"), "\n") {
			if _, err := fmt.Fprintf(w, "# %s\n", line); err != nil {
				return errors.Wrap(err, "failed to write TAP diagnostic")
			}
		}
	}

	return nil
}
