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

// Package bat contains the building blocks of the ciao Basic Acceptance
// Tests.  All operations on the cluster are performed by execing ciao-cli
// and parsing its human readable output, rather than by using ciao's REST
// APIs directly.  Driving the cluster through ciao-cli allows the BAT suite
// to test a little bit more of ciao, at the cost of a dependency on the
// exact text format ciao-cli writes to stdout.  The parsers for that text
// format are all located in parse.go so that the rest of the package is
// insulated from any future format changes.
package bat
