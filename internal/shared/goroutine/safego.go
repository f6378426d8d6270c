// Package goroutine provides panic-safe goroutine launching.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"helpdesk/internal/shared/logger"
)

// SafeGo runs fn in a goroutine and logs any panic with its stack trace
// instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
