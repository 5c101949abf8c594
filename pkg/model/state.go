package model

const okMessage = "OK"

// State is the envelope shared by backend responses: whether the request
// succeeded and a message, which is always "OK" on success.
type State struct {
	success bool
	message string
}

func newState(success bool, message string) State {
	if success {
		message = okMessage
	}
	return State{success: success, message: message}
}

// Success reports whether the request succeeded.
func (s State) Success() bool { return s.success }

// Message returns "OK" on success, otherwise the failure reason.
func (s State) Message() string { return s.message }
