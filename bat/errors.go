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
	"fmt"
	"time"
)

// ConfigError indicates that a required environment variable or credential
// field is missing.  It is fatal and is reported before any test runs.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is not defined", e.Name)
}

// TimeoutError indicates that an external command failed to complete within
// its allotted time.  The command is killed when the timeout fires but its
// side effects on the cluster may still be in flight, so callers must not
// assume a timed out command is safe to retry.
type TimeoutError struct {
	Args    []string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %v timed out after %v", e.Args, e.Timeout)
}

// CommandError indicates that an external command exited with a non-zero
// exit code.  Output holds whatever the command wrote to stderr.  It is
// diagnostic text only and is never parsed.
type CommandError struct {
	Args     []string
	ExitCode int
	Output   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %v exited with code %d\n%s",
		e.Args, e.ExitCode, e.Output)
}

// ParseError indicates that the output of an external command did not match
// the text format the harness expects.  A truncated record always results
// in a ParseError, never in a partially populated record.
type ParseError struct {
	Entity string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse %s record: %s", e.Entity, e.Reason)
}
