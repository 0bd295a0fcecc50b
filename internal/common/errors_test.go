package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}

	t.Run("wrap nil error", func(t *testing.T) {
		assert.NoError(t, WrapError(nil, "wrapper message"))
	})
}

func TestNewError(t *testing.T) {
	err := NewError("error: %s occurred at %s", "connection failed", "localhost:8080")
	assert.EqualError(t, err, "error: connection failed occurred at localhost:8080")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("check_every_x_hours", 0, "must be positive")

	assert.Equal(t, "check_every_x_hours", err.Field)
	assert.Equal(t, "validation failed for field 'check_every_x_hours': must be positive (value: 0)", err.Error())
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{
			name:     "section and field",
			err:      NewConfigurationError("email", "port", "must be positive"),
			expected: "configuration error in section 'email', field 'port': must be positive",
		},
		{
			name:     "section only",
			err:      NewConfigurationError("pages", "", "no pages configured"),
			expected: "configuration error in section 'pages': no pages configured",
		},
		{
			name:     "reason only",
			err:      NewConfigurationError("", "", "file not found"),
			expected: "configuration error: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidConfiguration)
		})
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: lookup example.invalid: no such host")
	err := NewNetworkError("http://example.invalid", "HTTP request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.Contains(t, err.Error(), "http://example.invalid")

	bare := NewNetworkError("http://example.com", "timeout", nil)
	assert.Equal(t, "network error for 'http://example.com': timeout", bare.Error())
}

func TestHTTPError(t *testing.T) {
	err := NewHTTPErrorWithURL(503, "Service Unavailable", "http://example.com")
	assert.Equal(t, "HTTP 503 error for 'http://example.com': Service Unavailable", err.Error())

	var httpErr *HTTPError
	wrapped := WrapError(err, "fetch failed")
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, 503, httpErr.StatusCode)
}

func TestCombineErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	assert.NoError(t, CombineErrors(nil))
	assert.NoError(t, CombineErrors([]error{nil, nil}))
	assert.Same(t, first, CombineErrors([]error{nil, first}))
	assert.EqualError(t, CombineErrors([]error{first, second}), "multiple errors occurred: [first; second]")
}
