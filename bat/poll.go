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
	"time"
)

// PollUntil repeatedly invokes pred until it returns true or the attempt
// budget is exhausted.  The polling is synchronous: pred is called, and if
// it returns false PollUntil sleeps for interval before the next attempt.
// There is no backoff, the interval is constant.  PollUntil returns true as
// soon as pred does, and false once maxAttempts invocations have failed or
// the context is cancelled during a sleep.
func PollUntil(ctx context.Context, pred func() bool, interval time.Duration,
	maxAttempts int) bool {

	for i := 0; i < maxAttempts; i++ {
		if pred() {
			return true
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return false
		}
	}

	return false
}
