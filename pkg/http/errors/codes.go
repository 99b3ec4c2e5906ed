package errors

import "net/http"

// Fixed human-readable messages per status code.
const (
	MessageBadRequest       = "bad request"
	MessageNotFound         = "resource not found"
	MessageMethodNotAllowed = "Method not allowed"
	MessageUnprocessable    = "unprocessable"
	MessageInternalError    = "Internal Server error"
)

var messages = map[int]string{
	http.StatusBadRequest:          MessageBadRequest,
	http.StatusNotFound:            MessageNotFound,
	http.StatusMethodNotAllowed:    MessageMethodNotAllowed,
	http.StatusUnprocessableEntity: MessageUnprocessable,
	http.StatusInternalServerError: MessageInternalError,
}

// MessageFor returns the fixed message for status, falling back to the
// standard status text.
func MessageFor(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
