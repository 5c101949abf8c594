package model

import (
	"encoding/json"
	"fmt"

	"github.com/TimurManjosov/ffc-commons-go/pkg/codec"
)

// FlagState is the response envelope for a single flag evaluation.
type FlagState[T Variation] struct {
	State
	data EvalDetail[T]
}

// NewFlagState wraps detail. The state is successful when the detail is,
// and the message falls back to the detail's reason otherwise.
func NewFlagState[T Variation](detail EvalDetail[T]) FlagState[T] {
	return FlagState[T]{State: newState(detail.IsSuccess(), detail.Reason()), data: detail}
}

// Data returns the wrapped evaluation result.
func (s FlagState[T]) Data() EvalDetail[T] { return s.data }

func (s FlagState[T]) String() string {
	return fmt.Sprintf("FlagState{success=%t, message=%q, data=%v}", s.success, s.message, s.data)
}

type flagStateWire[T Variation] struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    EvalDetail[T] `json:"data"`
}

// MarshalJSON implements json.Marshaler.
func (s FlagState[T]) MarshalJSON() ([]byte, error) {
	return codec.SerializeBytes(flagStateWire[T]{Success: s.success, Message: s.message, Data: s.data})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlagState[T]) UnmarshalJSON(data []byte) error {
	var w flagStateWire[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = FlagState[T]{State: State{success: w.Success, message: w.Message}, data: w.Data}
	return nil
}

// AfterDeserialization restores the "OK" message of a successful state.
func (s *FlagState[T]) AfterDeserialization() error {
	s.State = newState(s.success, s.message)
	return nil
}

// DecodeFlagState decodes a single-flag response.
func DecodeFlagState[T Variation](text string) (FlagState[T], error) {
	return codec.Deserialize[FlagState[T]](text)
}
