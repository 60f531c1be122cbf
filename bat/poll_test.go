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
	"testing"
	"time"
)

// Check that an exhausted poll budget fails.
//
// Poll with a predicate that never succeeds and an attempt budget of 5.
//
// The predicate is invoked exactly 5 times, at least one interval elapses
// between invocations and PollUntil returns false.
func TestPollUntilExhausted(t *testing.T) {
	const maxAttempts = 5
	const interval = 10 * time.Millisecond

	count := 0
	start := time.Now()
	ok := PollUntil(context.Background(), func() bool {
		count++
		return false
	}, interval, maxAttempts)
	elapsed := time.Since(start)

	if ok {
		t.Fatalf("expected poll to fail")
	}

	if count != maxAttempts {
		t.Fatalf("expected %d attempts, got %d", maxAttempts, count)
	}

	if elapsed < maxAttempts*interval {
		t.Fatalf("expected at least %v to elapse, got %v",
			maxAttempts*interval, elapsed)
	}
}

// Check that the poll stops on first success.
//
// Poll with a predicate that succeeds on its third invocation.
//
// PollUntil returns true after exactly three invocations.
func TestPollUntilSucceeds(t *testing.T) {
	count := 0
	ok := PollUntil(context.Background(), func() bool {
		count++
		return count == 3
	}, time.Millisecond, 10)

	if !ok {
		t.Fatalf("expected poll to succeed")
	}

	if count != 3 {
		t.Fatalf("expected 3 attempts, got %d", count)
	}
}

// Check that a cancelled context stops the poll.
//
// Poll with a never succeeding predicate, a large attempt budget and a
// context that is cancelled almost immediately.
//
// PollUntil returns false long before the attempt budget is spent.
func TestPollUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	count := 0
	done := make(chan bool)
	go func() {
		done <- PollUntil(ctx, func() bool {
			count++
			return false
		}, time.Hour, 1000)
	}()

	cancel()

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected poll to fail")
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("poll did not observe cancellation")
	}

	if count != 1 {
		t.Fatalf("expected 1 attempt, got %d", count)
	}
}
