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
	"strings"
)

// Workload describes an instance template defined on the cluster.  All
// fields hold the raw text ciao-cli printed, minus surrounding whitespace.
type Workload struct {
	Name      string
	UUID      string
	ImageUUID string
	CPUs      string
	Mem       string
}

// Tenant contains basic information about a tenant.
type Tenant struct {
	UUID string
	Name string
}

// Instance contains detailed information about an instance.  Status is a
// free-form string whose expected terminal value is "active".
type Instance struct {
	UUID       string
	Status     string
	PrivateIP  string
	MacAddress string
	NodeUUID   string
	ImageUUID  string
	TenantUUID string
}

// CNCI contains information about a tenant's network concierge instance.
type CNCI struct {
	UUID       string
	TenantUUID string
	IPv4       string
}

// NodeStatus summarises the output of ciao-cli node status.  Total and
// Ready are kept as the raw tokens extracted from the output.
type NodeStatus struct {
	Total string
	Ready string
}

// AllReady reports whether every node in the cluster is ready.  The two
// counts are compared as opaque strings, exactly as the original harness
// did, so "05" and "5" are not considered equal.
func (s NodeStatus) AllReady() bool {
	return s.Total == s.Ready
}

// colonField returns the text between the first and second colon of a
// field line, trimmed of surrounding whitespace.
func colonField(line string) (string, error) {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return "", fmt.Errorf("missing \":\" separator in %q", line)
	}
	return strings.TrimSpace(parts[1]), nil
}

// wordField returns the second whitespace separated token of a field line.
func wordField(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", fmt.Errorf("missing value in %q", line)
	}
	return fields[1], nil
}

// scanBlocks walks the output lines looking for lines starting with the
// record header keyword.  Each header is followed by exactly count field
// lines, consumed unconditionally in declared order.  A header with fewer
// than count lines remaining is a truncated record and yields a ParseError
// rather than a short result.
func scanBlocks(lines []string, entity string, count int,
	extract func(string) (string, error)) ([][]string, error) {

	var records [][]string

	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], entity) {
			continue
		}

		if i+count >= len(lines) {
			return nil, &ParseError{
				Entity: entity,
				Reason: fmt.Sprintf("record truncated after %q", lines[i]),
			}
		}

		record := make([]string, 0, count)
		for j := i + 1; j <= i+count; j++ {
			value, err := extract(lines[j])
			if err != nil {
				return nil, &ParseError{Entity: entity, Reason: err.Error()}
			}
			record = append(record, value)
		}
		records = append(records, record)
		i += count
	}

	return records, nil
}

// ParseWorkloads converts the output of ciao-cli workload list into an
// ordered slice of Workload records.
func ParseWorkloads(lines []string) ([]Workload, error) {
	records, err := scanBlocks(lines, "Workload", 5, colonField)
	if err != nil {
		return nil, err
	}

	workloads := make([]Workload, len(records))
	for i, r := range records {
		workloads[i] = Workload{
			Name:      r[0],
			UUID:      r[1],
			ImageUUID: r[2],
			CPUs:      r[3],
			Mem:       r[4],
		}
	}
	return workloads, nil
}

// ParseTenants converts the output of ciao-cli tenant list -all into an
// ordered slice of Tenant records.
func ParseTenants(lines []string) ([]Tenant, error) {
	records, err := scanBlocks(lines, "Tenant", 2, wordField)
	if err != nil {
		return nil, err
	}

	tenants := make([]Tenant, len(records))
	for i, r := range records {
		tenants[i] = Tenant{
			UUID: r[0],
			Name: r[1],
		}
	}
	return tenants, nil
}

// ParseInstances converts the output of ciao-cli instance list -detail into
// an ordered slice of Instance records.
func ParseInstances(lines []string) ([]Instance, error) {
	records, err := scanBlocks(lines, "Instance", 7, colonField)
	if err != nil {
		return nil, err
	}

	instances := make([]Instance, len(records))
	for i, r := range records {
		instances[i] = Instance{
			UUID:       r[0],
			Status:     r[1],
			PrivateIP:  r[2],
			MacAddress: r[3],
			NodeUUID:   r[4],
			ImageUUID:  r[5],
			TenantUUID: r[6],
		}
	}
	return instances, nil
}

// ParseCNCIs converts the output of ciao-cli node list -cnci into an
// ordered slice of CNCI records.
func ParseCNCIs(lines []string) ([]CNCI, error) {
	records, err := scanBlocks(lines, "CNCI", 3, colonField)
	if err != nil {
		return nil, err
	}

	cncis := make([]CNCI, len(records))
	for i, r := range records {
		cncis[i] = CNCI{
			UUID:       r[0],
			TenantUUID: r[1],
			IPv4:       r[2],
		}
	}
	return cncis, nil
}

// ParseNodeStatus extracts the node counts from the output of ciao-cli
// node status.  The parse is positional rather than header based: the
// total is the third whitespace token of the first line and the ready
// count is the second token of the second line.
func ParseNodeStatus(lines []string) (NodeStatus, error) {
	if len(lines) < 2 {
		return NodeStatus{}, &ParseError{
			Entity: "node status",
			Reason: fmt.Sprintf("expected at least 2 lines, got %d", len(lines)),
		}
	}

	totalFields := strings.Fields(lines[0])
	if len(totalFields) < 3 {
		return NodeStatus{}, &ParseError{
			Entity: "node status",
			Reason: fmt.Sprintf("missing total count in %q", lines[0]),
		}
	}

	readyFields := strings.Fields(lines[1])
	if len(readyFields) < 2 {
		return NodeStatus{}, &ParseError{
			Entity: "node status",
			Reason: fmt.Sprintf("missing ready count in %q", lines[1]),
		}
	}

	return NodeStatus{
		Total: totalFields[2],
		Ready: readyFields[1],
	}, nil
}

// ParseCreatedInstances extracts the UUIDs of newly created instances from
// the output of ciao-cli instance add.  Each line of output is expected to
// name one instance, with the UUID following the last colon.
func ParseCreatedInstances(lines []string) ([]string, error) {
	var uuids []string

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		colonIndex := strings.LastIndex(line, ":")
		if colonIndex == -1 || colonIndex+1 >= len(line) {
			return nil, &ParseError{
				Entity: "created instance",
				Reason: fmt.Sprintf("unable to determine UUID from %q", line),
			}
		}
		uuids = append(uuids, strings.TrimSpace(line[colonIndex+1:]))
	}

	return uuids, nil
}
