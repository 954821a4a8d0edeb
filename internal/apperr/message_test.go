package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"validation text surfaces",
			fmt.Errorf("%w: please enter a valid email address", ErrValidation),
			"please enter a valid email address",
		},
		{
			"conflict text surfaces",
			fmt.Errorf("%w: email address is already registered", ErrConflict),
			"email address is already registered",
		},
		{
			"authentication text surfaces",
			fmt.Errorf("%w: wrong email or password", ErrAuthentication),
			"wrong email or password",
		},
		{
			"storage detail is hidden",
			fmt.Errorf("%w: connection refused to 10.0.0.5:5432", ErrStorage),
			GenericMessage,
		},
		{
			"unknown errors are hidden",
			errors.New("pq: duplicate key value violates unique constraint"),
			GenericMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
