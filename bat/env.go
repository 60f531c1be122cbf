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
	"sort"
	"strings"
)

const (
	ciaoIdentityEnv      = "CIAO_IDENTITY"
	ciaoControllerEnv    = "CIAO_CONTROLLER"
	ciaoUsernameEnv      = "CIAO_USERNAME"
	ciaoPasswordEnv      = "CIAO_PASSWORD"
	ciaoAdminUsernameEnv = "CIAO_ADMIN_USERNAME"
	ciaoAdminPasswordEnv = "CIAO_ADMIN_PASSWORD"
)

// RequiredEnv lists the environment variables that must be set before any
// BAT test can run.
var RequiredEnv = []string{
	ciaoIdentityEnv,
	ciaoControllerEnv,
	ciaoUsernameEnv,
	ciaoPasswordEnv,
	ciaoAdminUsernameEnv,
	ciaoAdminPasswordEnv,
}

// Role identifies the access level a set of credentials grants.
type Role string

// The two roles ciao-cli commands are issued with.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Credentials is an immutable snapshot of the environment a ciao-cli
// invocation runs with, tagged with the role it grants.  It is built once
// per harness and never modified afterwards.
type Credentials struct {
	role Role
	vars map[string]string
}

// Role returns the role the credentials were built for.
func (c Credentials) Role() Role {
	return c.role
}

// Get returns the value of the named variable, or "" if it is not set.
func (c Credentials) Get(name string) string {
	return c.vars[name]
}

// Environ returns the credentials in the "name=value" form expected by
// exec.Cmd.Env.  The returned slice is sorted and freshly allocated so the
// caller cannot mutate the credentials through it.
func (c Credentials) Environ() []string {
	env := make([]string, 0, len(c.vars))
	for k, v := range c.vars {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)
	return env
}

func envToMap(base []string) map[string]string {
	vars := make(map[string]string, len(base))
	for _, kv := range base {
		i := strings.Index(kv, "=")
		if i < 0 {
			continue
		}
		vars[kv[:i]] = kv[i+1:]
	}
	return vars
}

// CheckEnv verifies that each of the named variables is present and
// non-empty in the base environment.  The first missing variable is
// reported as a ConfigError.
func CheckEnv(base []string, names []string) error {
	vars := envToMap(base)
	for _, name := range names {
		if vars[name] == "" {
			return &ConfigError{Name: name}
		}
	}
	return nil
}

// UserCredentials builds the credentials used for user role ciao-cli
// operations.  The base environment is copied unchanged.
func UserCredentials(base []string) Credentials {
	return Credentials{
		role: RoleUser,
		vars: envToMap(base),
	}
}

// AdminCredentials builds the credentials used for admin role ciao-cli
// operations.  The base environment is copied with CIAO_USERNAME and
// CIAO_PASSWORD overwritten by the corresponding admin identity fields.
// All other entries are left untouched.  A ConfigError is returned if
// either admin field is absent from the base environment.
func AdminCredentials(base []string) (Credentials, error) {
	if err := CheckEnv(base, []string{ciaoAdminUsernameEnv, ciaoAdminPasswordEnv}); err != nil {
		return Credentials{}, err
	}

	vars := envToMap(base)
	vars[ciaoUsernameEnv] = vars[ciaoAdminUsernameEnv]
	vars[ciaoPasswordEnv] = vars[ciaoAdminPasswordEnv]

	return Credentials{
		role: RoleAdmin,
		vars: vars,
	}, nil
}
