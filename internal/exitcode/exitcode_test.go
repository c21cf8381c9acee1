package exitcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/merchdesk/internal/errors"
	"github.com/felixgeelhaar/merchdesk/internal/platform"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: Success},
		{
			name: "api unauthorized",
			err:  &platform.APIError{StatusCode: 401, Message: "nope"},
			want: AuthError,
		},
		{
			name: "api forbidden",
			err:  &platform.APIError{StatusCode: 403, Message: "admin only"},
			want: AuthError,
		},
		{
			name: "api not found",
			err:  &platform.APIError{StatusCode: 404, Message: "missing"},
			want: NotFound,
		},
		{
			name: "api server error",
			err:  &platform.APIError{StatusCode: 502, Message: "bad gateway"},
			want: ServerError,
		},
		{
			name: "api validation error",
			err:  &platform.APIError{StatusCode: 422, Message: "bad sku"},
			want: GeneralError,
		},
		{
			name: "wrapped network error",
			err:  fmt.Errorf("%w: dial tcp: connection refused", platform.ErrNetwork),
			want: NetworkError,
		},
		{
			name: "not logged in",
			err:  errors.NewNotLoggedInError(),
			want: AuthError,
		},
		{
			name: "session expired",
			err:  errors.NewSessionExpiredError(),
			want: AuthError,
		},
		{
			name: "config invalid",
			err:  errors.NewConfigInvalidError("bad url", nil),
			want: GeneralError,
		},
		{
			name: "cobra usage error",
			err:  fmt.Errorf(`unknown flag: --frobnicate`),
			want: UsageError,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("something else"),
			want: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	assert.Equal(t, "Success", GetExitCodeDescription(Success))
	assert.Equal(t, "Authentication error", GetExitCodeDescription(AuthError))
	assert.Equal(t, "Interrupted", GetExitCodeDescription(Interrupted))
	assert.Equal(t, "Unknown error", GetExitCodeDescription(99))
}
