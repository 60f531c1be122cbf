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
	"testing"

	"github.com/stretchr/testify/assert"
)

var workloadListOutput = []string{
	"Workload 1",
	"\tName: Ubuntu latest test VM",
	"\tUUID: ab68111c-03a6-11e6-87de-001320fb6e31",
	"\tImage UUID: 73a86d7e-93c0-480e-9c41-ab42f69b7799",
	"\tCPUs: 2",
	"\tMemory: 256 MB",
	"Workload 2",
	"\tName: Debian latest test container",
	"\tUUID: e35ed972-c46c-4aad-a1e7-ef103ae079a2",
	"\tImage UUID: b297580b-7344-4f57-9619-4eb82fe3a7e6",
	"\tCPUs: 2",
	"\tMemory: 256 MB",
}

// Check that well formed workload blocks parse verbatim.
//
// Parse a workload list containing two complete records.
//
// Exactly two Workload records are returned, in input order, with every
// field matching the input minus surrounding whitespace.
func TestParseWorkloads(t *testing.T) {
	workloads, err := ParseWorkloads(workloadListOutput)
	assert.Nil(t, err)

	assert.Equal(t, []Workload{
		{
			Name:      "Ubuntu latest test VM",
			UUID:      "ab68111c-03a6-11e6-87de-001320fb6e31",
			ImageUUID: "73a86d7e-93c0-480e-9c41-ab42f69b7799",
			CPUs:      "2",
			Mem:       "256 MB",
		},
		{
			Name:      "Debian latest test container",
			UUID:      "e35ed972-c46c-4aad-a1e7-ef103ae079a2",
			ImageUUID: "b297580b-7344-4f57-9619-4eb82fe3a7e6",
			CPUs:      "2",
			Mem:       "256 MB",
		},
	}, workloads)
}

// Check that truncated records are rejected.
//
// Parse workload lists cut short at every possible point after a header.
//
// Each parse fails with a ParseError and no partially populated record is
// returned.
func TestParseWorkloadsTruncated(t *testing.T) {
	for i := 7; i < len(workloadListOutput); i++ {
		workloads, err := ParseWorkloads(workloadListOutput[:i])
		assert.Nil(t, workloads)
		assert.IsType(t, &ParseError{}, err)
	}
}

// Check that malformed field lines are rejected.
//
// Parse a workload record whose UUID line has no ":" separator.
//
// The parse fails with a ParseError.
func TestParseWorkloadsMalformed(t *testing.T) {
	lines := append([]string{}, workloadListOutput[:6]...)
	lines[2] = "\tUUID ab68111c-03a6-11e6-87de-001320fb6e31"

	_, err := ParseWorkloads(lines)
	assert.IsType(t, &ParseError{}, err)
}

// Check tenant list parsing.
//
// Parse a tenant list containing two records.
//
// Both records are returned in order with UUID and name extracted from
// the second whitespace separated token of their field lines.
func TestParseTenants(t *testing.T) {
	lines := []string{
		"Tenant 1",
		"\tUUID: 8a497c34-d7b5-46fa-9d29-6e85581d1a11",
		"\tName: demo",
		"Tenant 2",
		"\tUUID: 9bf6fb0d-ed28-4f8d-b5ba-681b0b3e5182",
		"\tName: bat",
	}

	tenants, err := ParseTenants(lines)
	assert.Nil(t, err)
	assert.Equal(t, []Tenant{
		{UUID: "8a497c34-d7b5-46fa-9d29-6e85581d1a11", Name: "demo"},
		{UUID: "9bf6fb0d-ed28-4f8d-b5ba-681b0b3e5182", Name: "bat"},
	}, tenants)
}

// Check instance list parsing.
//
// Parse an instance list containing one complete record.
//
// All seven fields are extracted in declared order.
func TestParseInstances(t *testing.T) {
	lines := []string{
		"Instance #1",
		"\tUUID: 9c1e9cca-b0e9-425d-a669-1e83c4b19c43",
		"\tStatus: active",
		"\tPrivate IP: 172.16.0.2",
		"\tMAC Address: 02",
		"\tCN UUID: 467b99f3-d2a7-44b8-b5c6-3a552172600b",
		"\tImage UUID: 73a86d7e-93c0-480e-9c41-ab42f69b7799",
		"\tTenant UUID: 9bf6fb0d-ed28-4f8d-b5ba-681b0b3e5182",
	}

	instances, err := ParseInstances(lines)
	assert.Nil(t, err)
	assert.Equal(t, []Instance{
		{
			UUID:       "9c1e9cca-b0e9-425d-a669-1e83c4b19c43",
			Status:     "active",
			PrivateIP:  "172.16.0.2",
			MacAddress: "02",
			NodeUUID:   "467b99f3-d2a7-44b8-b5c6-3a552172600b",
			ImageUUID:  "73a86d7e-93c0-480e-9c41-ab42f69b7799",
			TenantUUID: "9bf6fb0d-ed28-4f8d-b5ba-681b0b3e5182",
		},
	}, instances)
}

// Check CNCI list parsing.
//
// Parse a CNCI list containing one record.
//
// The UUID, tenant UUID and IP are extracted in order.
func TestParseCNCIs(t *testing.T) {
	lines := []string{
		"CNCI 1",
		"\tCNCI UUID: 351db4b9-4284-4ba7-b91a-fce09cea3908",
		"\tTenant UUID: 9bf6fb0d-ed28-4f8d-b5ba-681b0b3e5182",
		"\tIPv4: 192.168.0.1",
	}

	cncis, err := ParseCNCIs(lines)
	assert.Nil(t, err)
	assert.Equal(t, []CNCI{
		{
			UUID:       "351db4b9-4284-4ba7-b91a-fce09cea3908",
			TenantUUID: "9bf6fb0d-ed28-4f8d-b5ba-681b0b3e5182",
			IPv4:       "192.168.0.1",
		},
	}, cncis)
}

// Check node status parsing and the readiness comparison.
//
// Parse node status outputs with equal counts, unequal counts and counts
// that are numerically equal but textually different.
//
// Readiness is determined by comparing the raw tokens as strings: "5" and
// "5" are ready, "5" and "4" are not, and "05" and "5" are not.
func TestParseNodeStatus(t *testing.T) {
	tests := []struct {
		total string
		ready string
		want  bool
	}{
		{"5", "5", true},
		{"5", "4", false},
		{"05", "5", false},
	}

	for _, tt := range tests {
		status, err := ParseNodeStatus([]string{
			"Total Nodes " + tt.total,
			"\tReady " + tt.ready,
			"\tFull 0",
			"\tOffline 0",
			"\tMaintenance 0",
		})
		assert.Nil(t, err)
		assert.Equal(t, tt.total, status.Total)
		assert.Equal(t, tt.ready, status.Ready)
		assert.Equal(t, tt.want, status.AllReady())
	}
}

// Check malformed node status output.
//
// Parse outputs with too few lines and too few tokens.
//
// Each parse fails with a ParseError.
func TestParseNodeStatusMalformed(t *testing.T) {
	malformed := [][]string{
		{},
		{"Total Nodes 5"},
		{"Total Nodes", "\tReady 5"},
		{"Total Nodes 5", "\tReady"},
	}

	for _, lines := range malformed {
		_, err := ParseNodeStatus(lines)
		assert.IsType(t, &ParseError{}, err)
	}
}

// Check created instance UUID extraction.
//
// Parse the output of an instance add command that created two instances,
// then an output with a line carrying no UUID.
//
// Both UUIDs are extracted from the text after the last colon; the
// malformed output fails with a ParseError.
func TestParseCreatedInstances(t *testing.T) {
	uuids, err := ParseCreatedInstances([]string{
		"Created new instance: 9c1e9cca-b0e9-425d-a669-1e83c4b19c43",
		"Created new instance: a2b3ecfe-a366-40bd-8b32-3f0d0a3b10c1",
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{
		"9c1e9cca-b0e9-425d-a669-1e83c4b19c43",
		"a2b3ecfe-a366-40bd-8b32-3f0d0a3b10c1",
	}, uuids)

	_, err = ParseCreatedInstances([]string{"instance creation pending"})
	assert.IsType(t, &ParseError{}, err)
}
