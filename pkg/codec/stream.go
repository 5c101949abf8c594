package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type scope struct {
	object  bool
	members int
}

// ObjectWriter emits a JSON document token by token, for types whose wire
// shape differs from their field layout. Errors are sticky and reported by
// Bytes.
type ObjectWriter struct {
	buf       bytes.Buffer
	enc       *json.Encoder
	stack     []scope
	afterName bool
	err       error
}

// NewObjectWriter returns an empty writer using the wire settings of Serialize.
func NewObjectWriter() *ObjectWriter {
	w := &ObjectWriter{}
	w.enc = json.NewEncoder(&w.buf)
	w.enc.SetEscapeHTML(false)
	return w
}

func (w *ObjectWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *ObjectWriter) top() *scope {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

// beforeValue writes the separator a value needs at the current position.
func (w *ObjectWriter) beforeValue() {
	if w.afterName {
		w.afterName = false
		return
	}
	s := w.top()
	if s == nil {
		if w.buf.Len() > 0 {
			w.fail(errors.New("multiple top-level values"))
		}
		return
	}
	if s.object {
		w.fail(errors.New("object member value written without a name"))
		return
	}
	if s.members > 0 {
		w.buf.WriteByte(',')
	}
	s.members++
}

func (w *ObjectWriter) literal(v any) {
	if err := w.enc.Encode(v); err != nil {
		w.fail(err)
		return
	}
	w.buf.Truncate(w.buf.Len() - 1)
}

// BeginObject opens an object.
func (w *ObjectWriter) BeginObject() *ObjectWriter {
	w.beforeValue()
	w.buf.WriteByte('{')
	w.stack = append(w.stack, scope{object: true})
	return w
}

// EndObject closes the innermost object.
func (w *ObjectWriter) EndObject() *ObjectWriter {
	return w.end(true, '}')
}

// BeginArray opens an array.
func (w *ObjectWriter) BeginArray() *ObjectWriter {
	w.beforeValue()
	w.buf.WriteByte('[')
	w.stack = append(w.stack, scope{object: false})
	return w
}

// EndArray closes the innermost array.
func (w *ObjectWriter) EndArray() *ObjectWriter {
	return w.end(false, ']')
}

func (w *ObjectWriter) end(object bool, delim byte) *ObjectWriter {
	s := w.top()
	if s == nil || s.object != object || w.afterName {
		w.fail(fmt.Errorf("unbalanced %q", delim))
		return w
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.buf.WriteByte(delim)
	return w
}

// Name writes the name of the next object member.
func (w *ObjectWriter) Name(name string) *ObjectWriter {
	s := w.top()
	if s == nil || !s.object || w.afterName {
		w.fail(fmt.Errorf("member name %q outside of an object", name))
		return w
	}
	if s.members > 0 {
		w.buf.WriteByte(',')
	}
	s.members++
	w.literal(name)
	w.buf.WriteByte(':')
	w.afterName = true
	return w
}

// String writes a string value.
func (w *ObjectWriter) String(v string) *ObjectWriter {
	return w.Value(v)
}

// Value writes any value using the standard encoding rules.
func (w *ObjectWriter) Value(v any) *ObjectWriter {
	w.beforeValue()
	w.literal(v)
	return w
}

// Bytes returns the encoded document, or the first error encountered.
func (w *ObjectWriter) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if len(w.stack) > 0 || w.afterName {
		return nil, errors.New("incomplete document")
	}
	return w.buf.Bytes(), nil
}

// TokenReader walks a JSON document token by token. It is the decoding
// counterpart of ObjectWriter.
type TokenReader struct {
	dec *json.Decoder
}

// NewTokenReader reads from data.
func NewTokenReader(data []byte) *TokenReader {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return &TokenReader{dec: dec}
}

func (r *TokenReader) expectDelim(want json.Delim) error {
	tok, err := r.dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// BeginObject consumes '{'.
func (r *TokenReader) BeginObject() error { return r.expectDelim('{') }

// EndObject consumes '}'.
func (r *TokenReader) EndObject() error { return r.expectDelim('}') }

// BeginArray consumes '['.
func (r *TokenReader) BeginArray() error { return r.expectDelim('[') }

// EndArray consumes ']'.
func (r *TokenReader) EndArray() error { return r.expectDelim(']') }

// HasNext reports whether the current object or array has another element.
func (r *TokenReader) HasNext() bool {
	return r.dec.More()
}

// NextName reads an object member name.
func (r *TokenReader) NextName() (string, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return "", err
	}
	name, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected member name, got %v", tok)
	}
	return name, nil
}

// NextString reads a string value. A number is returned as its literal
// text, as written in the document. A JSON null yields ok == false.
func (r *TokenReader) NextString() (s string, ok bool, err error) {
	tok, err := r.dec.Token()
	if err != nil {
		return "", false, err
	}
	switch v := tok.(type) {
	case string:
		return v, true, nil
	case json.Number:
		return v.String(), true, nil
	case nil:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("expected string, got %v", tok)
	}
}

// Skip discards the next value, whatever its type.
func (r *TokenReader) Skip() error {
	var raw json.RawMessage
	return r.dec.Decode(&raw)
}

// Close reports an error when anything but whitespace follows the document.
func (r *TokenReader) Close() error {
	if _, err := r.dec.Token(); err != io.EOF {
		if err == nil {
			return errors.New("unexpected data after top-level value")
		}
		return err
	}
	return nil
}
