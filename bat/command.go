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
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultCLIPath is the command execed by the harness when no explicit
// path is configured.
const DefaultCLIPath = "ciao-cli"

// Runner execs the ciao-cli binary with a bounded timeout.  The process
// runs with the environment held by the supplied credentials and nothing
// else, so user and admin invocations cannot leak into each other.
type Runner struct {
	// Path is the ciao-cli binary to exec.
	Path string

	// Timeout bounds each invocation.  The process is killed when the
	// timeout fires.
	Timeout time.Duration
}

// Run execs the configured command with the given argument vector and
// credentials, waiting up to the Runner's timeout for it to complete.  On
// success the data the command wrote to stdout is returned as a slice of
// lines.  A command that overruns its timeout results in a TimeoutError and
// a command that exits non-zero results in a CommandError carrying the
// captured stderr as diagnostic text.
func (r *Runner) Run(ctx context.Context, creds Credentials, args ...string) ([]string, error) {
	path := r.Path
	if path == "" {
		path = DefaultCLIPath
	}

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, args...)
	cmd.Env = creds.Environ()

	data, err := cmd.Output()
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, &TimeoutError{Args: args, Timeout: r.Timeout}
		}
		if err, ok := err.(*exec.ExitError); ok {
			return nil, &CommandError{
				Args:     args,
				ExitCode: err.ExitCode(),
				Output:   string(err.Stderr),
			}
		}
		return nil, errors.Wrapf(err, "failed to launch %s %v", path, args)
	}

	return splitLines(data), nil
}

func splitLines(data []byte) []string {
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
