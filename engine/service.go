// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"time"
)

// ServiceRoutine calls fn with the current time every interval until ctx
// is done. It blocks, so it is typically started in its own goroutine.
func ServiceRoutine(ctx context.Context, interval time.Duration, fn func(t time.Time)) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-tick.C:
			fn(t)
		}
	}
}
