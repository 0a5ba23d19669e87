package platform

import "runtime"

// Isolated runs fn on a dedicated goroutine pinned to its own OS thread and
// blocks until it returns. A panic inside fn is reported as errPanicked.
func Isolated[T any](fn func() (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer func() {
			if r := recover(); r != nil {
				var zero T
				done <- result{val: zero, err: errPanicked}
			}
		}()
		v, err := fn()
		done <- result{val: v, err: err}
	}()
	r := <-done
	return r.val, r.err
}
