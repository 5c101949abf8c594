package model

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/TimurManjosov/ffc-commons-go/pkg/codec"
)

// AllFlagStates is the response to a request for every flag of a user.
type AllFlagStates[T Variation] struct {
	State
	data []EvalDetail[T]
}

// NewAllFlagStates returns an aggregate result. The message is replaced
// by "OK" when success is true.
func NewAllFlagStates[T Variation](success bool, message string, data []EvalDetail[T]) AllFlagStates[T] {
	return AllFlagStates[T]{State: newState(success, message), data: slices.Clone(data)}
}

// EmptyAllFlagStates returns an unsuccessful result without data.
func EmptyAllFlagStates[T Variation](message string) AllFlagStates[T] {
	return AllFlagStates[T]{State: newState(false, message)}
}

// Data returns a copy of the evaluation results, in backend order.
// It is nil for a result built by EmptyAllFlagStates.
func (s AllFlagStates[T]) Data() []EvalDetail[T] { return slices.Clone(s.data) }

// Len returns the number of evaluation results.
func (s AllFlagStates[T]) Len() int { return len(s.data) }

// Lookup returns the result whose KeyName is keyName.
func (s AllFlagStates[T]) Lookup(keyName string) (EvalDetail[T], bool) {
	for _, d := range s.data {
		if d.keyName == keyName {
			return d, true
		}
	}
	return EvalDetail[T]{}, false
}

// Equal reports whether both results carry the same state and data.
func (s AllFlagStates[T]) Equal(other AllFlagStates[T]) bool {
	return s.State == other.State && slices.Equal(s.data, other.data) && (s.data == nil) == (other.data == nil)
}

func (s AllFlagStates[T]) String() string {
	return fmt.Sprintf("AllFlagStates{success=%t, message=%q, data=%v}", s.success, s.message, s.data)
}

type allFlagStatesWire[T Variation] struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    []EvalDetail[T] `json:"data"`
}

// MarshalJSON implements json.Marshaler.
func (s AllFlagStates[T]) MarshalJSON() ([]byte, error) {
	return codec.SerializeBytes(allFlagStatesWire[T]{Success: s.success, Message: s.message, Data: s.data})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *AllFlagStates[T]) UnmarshalJSON(data []byte) error {
	var w allFlagStatesWire[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = AllFlagStates[T]{State: State{success: w.Success, message: w.Message}, data: w.Data}
	return nil
}

// DeserializedChildren exposes the decoded results to the codec hook walk.
func (s *AllFlagStates[T]) DeserializedChildren() []any {
	children := make([]any, len(s.data))
	for i := range s.data {
		children[i] = &s.data[i]
	}
	return children
}

// AfterDeserialization restores the "OK" message of a successful state.
func (s *AllFlagStates[T]) AfterDeserialization() error {
	s.State = newState(s.success, s.message)
	return nil
}

// DecodeAllFlagStates decodes an aggregate response.
func DecodeAllFlagStates[T Variation](text string) (AllFlagStates[T], error) {
	return codec.Deserialize[AllFlagStates[T]](text)
}
