package controllers

import (
	"context"
	"sync"
)

// DeliveryFunc adapts a function to Delivery
type DeliveryFunc func(ctx context.Context, text string) error

// Deliver calls f
func (f DeliveryFunc) Deliver(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Recorder keeps every delivered text in memory
type Recorder struct {
	mu    sync.Mutex
	texts []string
}

// Deliver records text
func (r *Recorder) Deliver(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

// Texts returns the delivered texts in order
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

// Last returns the most recent delivered text
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.texts) == 0 {
		return ""
	}
	return r.texts[len(r.texts)-1]
}
