package errors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/goseed/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("cycle", `"2021 Benchmark"`)
	assert.Equal(t, `no cycle "2021 Benchmark"`, err.Error())
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

	wrapped := fmt.Errorf("ensure: %w", err)
	assert.True(t, pkgerrors.IsNotFound(wrapped))
	assert.False(t, pkgerrors.IsAPIError(wrapped))
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("start", nil, "required to create a cycle")
	assert.Equal(t, "invalid start: required to create a cycle", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	bare := &pkgerrors.ValidationError{Message: "duplicate mapping"}
	assert.Equal(t, "invalid input: duplicate mapping", bare.Error())
}

func TestAPIError(t *testing.T) {
	t.Run("response", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Service:    "seed",
			StatusCode: http.StatusBadRequest,
			Endpoint:   "POST /api/v3/cycles/",
			Message:    "end date before start date",
		}
		assert.Equal(t, "seed POST /api/v3/cycles/ returned 400 Bad Request: end date before start date", err.Error())
		assert.True(t, pkgerrors.IsAPIError(err))
		assert.False(t, err.Temporary())
	})

	t.Run("no response", func(t *testing.T) {
		base := errors.New("connection refused")
		err := &pkgerrors.APIError{Service: "seed", Message: "request failed", Err: base}
		assert.ErrorIs(t, err, base)
		assert.Equal(t, "seed: request failed: connection refused", err.Error())
		assert.True(t, pkgerrors.IsServiceUnavailable(err))
		assert.True(t, err.Temporary())
	})

	tests := []struct {
		status    int
		sentinel  error
		temporary bool
	}{
		{http.StatusNotFound, pkgerrors.ErrNotFound, false},
		{http.StatusUnauthorized, pkgerrors.ErrUnauthorized, false},
		{http.StatusForbidden, pkgerrors.ErrUnauthorized, false},
		{http.StatusTooManyRequests, pkgerrors.ErrRateLimited, true},
		{http.StatusInternalServerError, pkgerrors.ErrServiceUnavailable, true},
		{http.StatusServiceUnavailable, pkgerrors.ErrServiceUnavailable, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := pkgerrors.NewAPIError("seed", tt.status, "x")
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.temporary, err.Temporary())
		})
	}

	t.Run("bad request matches no sentinel", func(t *testing.T) {
		err := pkgerrors.NewAPIError("seed", http.StatusBadRequest, "bad")
		assert.False(t, pkgerrors.IsNotFound(err))
		assert.False(t, pkgerrors.IsServiceUnavailable(err))
		assert.False(t, pkgerrors.IsValidationError(err), "service rejections are not local validation")
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("no such file")
	err := pkgerrors.NewConfigError("connection", "missing base_url", base)
	assert.Equal(t, "bad connection configuration: missing base_url", err.Error())
	assert.ErrorIs(t, err, base)

	bare := &pkgerrors.ConfigError{Message: "empty"}
	assert.Equal(t, "bad configuration: empty", bare.Error())
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{
			name: "file and line",
			err:  &pkgerrors.ParseError{Format: "csv", File: "mappings.csv", Line: 3, Message: "expected 4 columns"},
			want: "cannot parse csv file mappings.csv (line 3): expected 4 columns",
		},
		{
			name: "file only",
			err:  pkgerrors.NewParseError("yaml", "mappings.yaml", "invalid indentation", nil),
			want: "cannot parse yaml file mappings.yaml: invalid indentation",
		},
		{
			name: "no file",
			err:  pkgerrors.NewParseError("json", "", "unexpected EOF", nil),
			want: "cannot parse json: unexpected EOF",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, pkgerrors.IsValidationError(tt.err))
		})
	}

	base := errors.New("EOF")
	wrapped := pkgerrors.WrapParse("csv", "data.csv", base)
	var parseErr *pkgerrors.ParseError
	require.ErrorAs(t, wrapped, &parseErr)
	assert.Equal(t, "csv", parseErr.Format)
	assert.ErrorIs(t, wrapped, base)
	assert.Nil(t, pkgerrors.WrapParse("csv", "data.csv", nil))
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("open", "/tmp/mappings.csv", base)
	var ioErr *pkgerrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "open", ioErr.Operation)
	assert.Equal(t, "cannot open /tmp/mappings.csv: permission denied", err.Error())
	assert.ErrorIs(t, err, base)
	assert.False(t, pkgerrors.IsValidationError(err))
	assert.Nil(t, pkgerrors.WrapIO("read", "file", nil))
}

func TestResourceError(t *testing.T) {
	base := pkgerrors.NewAPIError("seed", http.StatusNotFound, "missing")
	err := pkgerrors.WrapResource("delete", "cycle", "42", base)
	var resErr *pkgerrors.ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "delete cycle 42: "+base.Error(), err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Nil(t, pkgerrors.WrapResource("delete", "cycle", "42", nil))

	noID := pkgerrors.NewResourceError("list", "labels", "", errors.New("boom"))
	assert.Equal(t, "list labels: boom", noID.Error())
}

func TestAuthenticationError(t *testing.T) {
	base := errors.New("api key empty")
	err := pkgerrors.NewAuthenticationError("basic", "username and API key are required", base)
	assert.Equal(t, "basic auth: username and API key are required", err.Error())
	assert.ErrorIs(t, err, base)
	assert.True(t, pkgerrors.IsUnauthorized(err))
}

func TestIsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err := pkgerrors.WrapResource("send", "request", "GET /api/v3/cycles/", ctx.Err())
	assert.True(t, pkgerrors.IsCanceled(err))
	assert.True(t, pkgerrors.IsCanceled(context.DeadlineExceeded))
	assert.False(t, pkgerrors.IsCanceled(errors.New("canceled")))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"validation", pkgerrors.NewValidationError("name", "", "must not be empty"), pkgerrors.ExitInvalid},
		{"parse", pkgerrors.NewParseError("csv", "m.csv", "bad", nil), pkgerrors.ExitInvalid},
		{"unauthorized", pkgerrors.NewAPIError("seed", http.StatusUnauthorized, "no"), pkgerrors.ExitUnauthorized},
		{"not found", pkgerrors.NewNotFoundError("cycle", "7"), pkgerrors.ExitNotFound},
		{"server", pkgerrors.NewAPIError("seed", http.StatusBadGateway, "down"), pkgerrors.ExitUnavailable},
		{"throttled", pkgerrors.NewAPIError("seed", http.StatusTooManyRequests, "slow"), pkgerrors.ExitUnavailable},
		{"other", errors.New("boom"), pkgerrors.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pkgerrors.ExitCode(tt.err))
		})
	}
}
