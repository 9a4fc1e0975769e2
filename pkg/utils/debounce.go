package utils

import (
	"sync"
	"time"
)

// Debounce returns a function that delays calling fn until delay has
// elapsed since its last invocation. Calls arriving inside the window
// cancel the pending one, so only the final arguments reach fn. Each
// returned function owns its own timer.
func Debounce[T any](fn func(T), delay time.Duration) func(T) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() { fn(arg) })
	}
}
