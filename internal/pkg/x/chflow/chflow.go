// Package chflow provides context-aware helpers for receiving from and
// sending to Go channels, ensuring operations respect cancellation and
// deadlines carried by a context.Context.
package chflow

import "context"

// Receive waits for a value from the channel or for the context to end.
// It returns the received value (zero value on cancellation) and a boolean
// reporting whether the receive succeeded.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var data T
	select {
	case <-ctx.Done():
		return data, false
	case data, ok := <-ch:
		return data, ok
	}
}

// Send attempts to send a value to the channel unless the context ends
// first. It returns true when the value was sent.
func Send[T any](ctx context.Context, ch chan<- T, data T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- data:
		return true
	}
}
