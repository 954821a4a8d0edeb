package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows becomes not found", sql.ErrNoRows, ErrNotFound},
		{"unique violation becomes conflict", &pq.Error{Code: "23505"}, ErrConflict},
		{"other pq error becomes failure", &pq.Error{Code: "23503"}, ErrFailure},
		{"infrastructure error becomes failure", cause, ErrFailure},
		{"wrapped cause is preserved", fmt.Errorf("query users: %w", cause), ErrFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			require.ErrorIs(t, got, tt.want)
			if tt.in != nil {
				require.ErrorIs(t, got, tt.in, "original cause must stay in the chain")
			}
		})
	}
}

func TestMapError_KeepsCause(t *testing.T) {
	cause := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	got := MapError(cause)

	require.ErrorIs(t, got, ErrConflict)
	var pqErr *pq.Error
	require.ErrorAs(t, got, &pqErr)
	assert.Equal(t, "users_email_key", pqErr.Constraint)
}
