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
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// DefaultResources describes the resource shape given to instances of a
// workload.
type DefaultResources struct {
	VCPUs int `yaml:"vcpus"`
	MemMB int `yaml:"mem_mb"`
}

// Source describes where a bootable disk comes from.
type Source struct {
	Type string `yaml:"service"`
	ID   string `yaml:"id"`
}

// Disk describes a disk attached to instances of a workload.
type Disk struct {
	Bootable  bool    `yaml:"bootable"`
	Source    *Source `yaml:"source"`
	Ephemeral bool    `yaml:"ephemeral"`
}

// WorkloadOptions contains the data needed to define a new workload.
type WorkloadOptions struct {
	Description     string           `yaml:"description"`
	VMType          string           `yaml:"vm_type"`
	FWType          string           `yaml:"fw_type,omitempty"`
	Defaults        DefaultResources `yaml:"defaults"`
	CloudConfigFile string           `yaml:"cloud_init,omitempty"`
	Disks           []Disk           `yaml:"disks,omitempty"`
}

// CreateWorkload defines a new workload on the cluster.  The options are
// marshalled to a temporary YAML file which is passed to ciao-cli workload
// create with the admin credentials.  The temporary file is removed before
// the function returns.
func (c *Cluster) CreateWorkload(ctx context.Context, opts WorkloadOptions) error {
	data, err := yaml.Marshal(&opts)
	if err != nil {
		return errors.Wrap(err, "failed to marshal workload options")
	}

	dir, err := ioutil.TempDir("", "ciao-bat-workload-")
	if err != nil {
		return errors.Wrap(err, "failed to create workload definition directory")
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "workload.yaml")
	if err := ioutil.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write workload definition")
	}

	_, err = c.runner.Run(ctx, c.admin, "workload", "create", "-yaml", path)
	return err
}

// WorkloadByName looks up a workload by its name field.  It returns an
// error if no workload with that name is defined.
func (c *Cluster) WorkloadByName(ctx context.Context, name string) (Workload, error) {
	workloads, err := c.Workloads(ctx)
	if err != nil {
		return Workload{}, err
	}

	for _, w := range workloads {
		if w.Name == name {
			return w, nil
		}
	}

	return Workload{}, errors.Errorf("no workload named %q", name)
}
