package codec

import (
	"fmt"
	"reflect"
)

// Finalizer is implemented by values that need to derive fields or validate
// themselves once decoding has fully materialized them.
type Finalizer interface {
	AfterDeserialization() error
}

// Parent is implemented by containers whose decoded children may themselves
// carry hooks. Children should be returned as pointers so hooks can mutate them.
type Parent interface {
	DeserializedChildren() []any
}

// Finalize runs the post-decode hooks of v and of every node reachable
// through Parent, innermost first. Each node's hook runs exactly once per call.
// Decode entry points call it automatically; it is exported for codecs that
// materialize values by other means.
//
// Pointers to pointers are followed down to the last pointer, so a decoded
// *X reached through a **X still gets its hooks. Nil pointers are skipped.
func Finalize(v any) error {
	v, ok := hookTarget(v)
	if !ok {
		return nil
	}
	if p, ok := v.(Parent); ok {
		for i, child := range p.DeserializedChildren() {
			if err := Finalize(child); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		}
	}
	if f, ok := v.(Finalizer); ok {
		if err := f.AfterDeserialization(); err != nil {
			return fmt.Errorf("after deserialization of %T: %w", v, err)
		}
	}
	return nil
}

func hookTarget(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	for rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	return rv.Interface(), true
}
