package handler

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// Nullable tells an absent key apart from an explicit null in a PATCH body.
type Nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Null = true
		return nil
	}
	return sonic.Unmarshal(b, &n.Value)
}

// Ptr returns the sent value, or nil when the key was absent or null.
func (n Nullable[T]) Ptr() *T {
	if !n.Set || n.Null {
		return nil
	}
	v := n.Value
	return &v
}

// Cleared reports an explicit null.
func (n Nullable[T]) Cleared() bool { return n.Set && n.Null }
