// Package codec is the JSON facility shared by the SDK model types.
//
// All decode failures are normalized to *ParseError. Encoding is compact,
// emits null fields explicitly and never HTML-escapes strings, which is the
// form the evaluation backend expects on the wire.
//
// After a value is fully decoded, the facility walks it and runs the
// AfterDeserialization hook of every node implementing Finalizer, children
// before parents. Containers expose their children through Parent.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// encode writes v using the process-wide wire settings. The settings are
// fixed here and never mutated, so concurrent calls need no locking.
func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// SerializeBytes encodes v into its wire form.
func SerializeBytes(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, fmt.Errorf("serialize %T: %w", v, err)
	}
	// json.Encoder terminates every value with a newline
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// Serialize encodes v into its wire form as a string.
func Serialize(v any) (string, error) {
	b, err := SerializeBytes(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Deserialize decodes text into a new T and runs its post-decode hooks.
// On failure the zero T is returned together with a *ParseError.
func Deserialize[T any](text string) (T, error) {
	return DeserializeReader[T](strings.NewReader(text))
}

// DeserializeBytes is Deserialize for a byte slice.
func DeserializeBytes[T any](data []byte) (T, error) {
	return DeserializeReader[T](bytes.NewReader(data))
}

// DeserializeReader decodes exactly one JSON value from r into a new T.
func DeserializeReader[T any](r io.Reader) (T, error) {
	var out T
	if err := decodeInto(r, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// DeserializeInto decodes text into target, which must be a non-nil pointer.
// The value is decoded and finalized on the side; target is overwritten only
// on success and left untouched when decoding fails.
func DeserializeInto(text string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return newParseError(fmt.Errorf("decode target must be a non-nil pointer, got %T", target))
	}
	fresh := reflect.New(rv.Elem().Type())
	if err := decodeInto(strings.NewReader(text), fresh.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}

func decodeInto(r io.Reader, target any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return newParseError(err)
	}
	// json.Unmarshal rejects trailing data and leaves no streaming state behind
	if err := json.Unmarshal(data, target); err != nil {
		return newParseError(err)
	}
	if err := Finalize(target); err != nil {
		return newParseError(err)
	}
	return nil
}
