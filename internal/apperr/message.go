package apperr

import (
	"errors"
	"strings"
)

// GenericMessage is shown when an error is not user-correctable.
// Infrastructure detail belongs in the logs, never in the response.
const GenericMessage = "An error occurred. Please try again."

// UserMessage extracts the user-facing text from a user-correctable
// error (validation, conflict, authentication) and falls back to the
// generic message for everything else.
func UserMessage(err error) string {
	for _, kind := range []error{ErrValidation, ErrConflict, ErrAuthentication} {
		if !errors.Is(err, kind) {
			continue
		}
		if msg, ok := strings.CutPrefix(err.Error(), kind.Error()+": "); ok {
			return msg
		}
		return kind.Error()
	}
	return GenericMessage
}
