package blobkit

import (
	"sync"
	"sync/atomic"
)

// CallbackChangeToken is a ChangeToken that supports active callbacks,
// signalled by the watcher when a filesystem event matches its filter.
type CallbackChangeToken struct {
	mu        sync.RWMutex
	changed   atomic.Bool
	callbacks []func()
}

// NewCallbackChangeToken creates a new ChangeToken that supports active callbacks.
func NewCallbackChangeToken() *CallbackChangeToken {
	return &CallbackChangeToken{}
}

func (t *CallbackChangeToken) HasChanged() bool {
	return t.changed.Load()
}

func (t *CallbackChangeToken) ActiveChangeCallbacks() bool {
	return true
}

func (t *CallbackChangeToken) RegisterChangeCallback(callback func()) (unregister func()) {
	t.mu.Lock()
	t.callbacks = append(t.callbacks, callback)
	index := len(t.callbacks) - 1
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if index < len(t.callbacks) {
			// Set to nil instead of removing to avoid index shifting
			t.callbacks[index] = nil
		}
	}
}

// SignalChange marks the token as changed and invokes all callbacks.
// This should be called by the watcher when a change is detected.
func (t *CallbackChangeToken) SignalChange() {
	if t.changed.Swap(true) {
		return // Already changed
	}

	t.mu.RLock()
	callbacks := make([]func(), len(t.callbacks))
	copy(callbacks, t.callbacks)
	t.mu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb()
		}
	}
}

// CancelledChangeToken is a ChangeToken that is already in a "changed"
// state. Useful for signaling that watching is not supported.
type CancelledChangeToken struct{}

func (CancelledChangeToken) HasChanged() bool {
	return true
}

func (CancelledChangeToken) ActiveChangeCallbacks() bool {
	return false
}

func (CancelledChangeToken) RegisterChangeCallback(callback func()) func() {
	// Immediately invoke the callback since we're already "changed"
	callback()
	return func() {}
}

// NeverChangeToken is a ChangeToken that never changes.
// Useful for static content that will never be modified.
type NeverChangeToken struct{}

func (NeverChangeToken) HasChanged() bool {
	return false
}

func (NeverChangeToken) ActiveChangeCallbacks() bool {
	return false
}

func (NeverChangeToken) RegisterChangeCallback(callback func()) func() {
	// Never call the callback
	return func() {}
}

var (
	_ ChangeToken = (*CallbackChangeToken)(nil)
	_ ChangeToken = CancelledChangeToken{}
	_ ChangeToken = NeverChangeToken{}
)
