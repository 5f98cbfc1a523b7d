package model

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference the backend serializes in two shapes: a raw id string or
// an embedded object. Both decode into the same value, so callers never branch
// on the wire form. Marshaling always emits the raw id, which is what the
// mutation endpoints accept.
type Ref[T any] struct {
	id  string
	obj *T
}

// NewRef returns a raw-id reference.
func NewRef[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

// Expanded returns a reference carrying the embedded object.
func Expanded[T any](id string, obj T) Ref[T] {
	return Ref[T]{id: id, obj: &obj}
}

// ID returns the referenced id, or "" for a zero reference.
func (r Ref[T]) ID() string { return r.id }

// Obj returns the embedded object when the backend sent one.
func (r Ref[T]) Obj() (*T, bool) { return r.obj, r.obj != nil }

// IsZero reports whether the reference carries neither id nor object.
func (r Ref[T]) IsZero() bool { return r.id == "" && r.obj == nil }

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.id)
}

func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}
	if data[0] == '"' {
		r.obj = nil
		return json.Unmarshal(data, &r.id)
	}

	var obj T
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	// The embedded object's id field varies by backend collection ("id" from
	// the API layer, "_id" straight from the store).
	var probe struct {
		ID    string `json:"id"`
		AltID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	r.obj = &obj
	r.id = probe.ID
	if r.id == "" {
		r.id = probe.AltID
	}
	return nil
}
