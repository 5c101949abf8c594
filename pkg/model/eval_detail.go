package model

import (
	"encoding/json"
	"fmt"

	"github.com/TimurManjosov/ffc-commons-go/pkg/codec"
)

// NoVariation is the index of a fallback value that did not come from an evaluation.
const NoVariation = -1

// Variation lists the flag value types the SDK exposes.
type Variation interface {
	string | bool | float64 | Value
}

// EvalDetail is the outcome of one flag evaluation: the value, its index in
// the flag's variation list, and the reason the backend chose it.
// It is immutable and comparable with ==.
type EvalDetail[T Variation] struct {
	value   T
	index   int
	reason  string
	keyName string
	name    string
}

// NewEvalDetail returns an evaluation result.
func NewEvalDetail[T Variation](value T, index int, reason string) EvalDetail[T] {
	return EvalDetail[T]{value: value, index: index, reason: reason}
}

// NewNamedEvalDetail returns an evaluation result that also names its flag.
func NewNamedEvalDetail[T Variation](value T, index int, reason, keyName, name string) EvalDetail[T] {
	return EvalDetail[T]{value: value, index: index, reason: reason, keyName: keyName, name: name}
}

// FallbackEvalDetail returns a result carrying a caller default, for use
// when no evaluation took place.
func FallbackEvalDetail[T Variation](fallback T, reason, keyName string) EvalDetail[T] {
	return EvalDetail[T]{value: fallback, index: NoVariation, reason: reason, keyName: keyName}
}

// Value returns the flag value.
func (d EvalDetail[T]) Value() T { return d.value }

// Index returns the position of the value within the flag's variations,
// or a negative number for a fallback value.
func (d EvalDetail[T]) Index() int { return d.index }

// Reason explains how the value was chosen.
func (d EvalDetail[T]) Reason() string { return d.reason }

// KeyName returns the flag key, if the backend sent it.
func (d EvalDetail[T]) KeyName() string { return d.keyName }

// Name returns the flag's display name, if the backend sent it.
func (d EvalDetail[T]) Name() string { return d.name }

// IsSuccess reports whether the value came from a real evaluation rather
// than a fallback.
func (d EvalDetail[T]) IsSuccess() bool { return d.index >= 0 }

// ToFlagState wraps the detail in a single-flag envelope.
func (d EvalDetail[T]) ToFlagState() FlagState[T] {
	return NewFlagState(d)
}

// Jsonfy returns the wire form of the detail.
func (d EvalDetail[T]) Jsonfy() (string, error) {
	return codec.Serialize(d)
}

func (d EvalDetail[T]) String() string {
	return fmt.Sprintf("EvalDetail{value=%v, index=%d, reason=%q, keyName=%q, name=%q}",
		d.value, d.index, d.reason, d.keyName, d.name)
}

type evalDetailWire[T Variation] struct {
	Value   T      `json:"value"`
	Index   int    `json:"index"`
	Reason  string `json:"reason"`
	KeyName string `json:"keyName,omitempty"`
	Name    string `json:"name,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d EvalDetail[T]) MarshalJSON() ([]byte, error) {
	return codec.SerializeBytes(evalDetailWire[T]{
		Value:   d.value,
		Index:   d.index,
		Reason:  d.reason,
		KeyName: d.keyName,
		Name:    d.name,
	})
}

// UnmarshalJSON implements json.Unmarshaler. A value of the wrong JSON type
// for T fails.
func (d *EvalDetail[T]) UnmarshalJSON(data []byte) error {
	var w evalDetailWire[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = EvalDetail[T]{value: w.Value, index: w.Index, reason: w.Reason, keyName: w.KeyName, name: w.Name}
	return nil
}

// DecodeEvalDetail decodes a single evaluation result.
func DecodeEvalDetail[T Variation](text string) (EvalDetail[T], error) {
	return codec.Deserialize[EvalDetail[T]](text)
}
