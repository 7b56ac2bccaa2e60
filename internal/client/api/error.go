package api

// statusSuccess is the envelope value every successful response carries.
// This is an application-level contract, not something the transport layer
// enforces.
const statusSuccess = "success"

// respMeta is the backend's response envelope. Payload types embed it so
// the client can check the envelope once and hand callers the bare payload.
type respMeta struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (m respMeta) status() string  { return m.Status }
func (m respMeta) message() string { return m.Message }

type envelope interface {
	status() string
	message() string
}

// Error is an application-level failure: the backend answered, but with
// status != "success". Transport failures and 401s are reported separately.
type Error struct {
	Status     string
	Message    string
	HTTPStatus int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}
