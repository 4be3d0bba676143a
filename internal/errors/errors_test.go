package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindNetwork, "network error"},
		{KindTimeout, "timeout"},
		{KindServer, "server error"},
		{KindConfig, "configuration error"},
		{KindIO, "I/O error"},
		{Kind(999), "unknown error"}, // Unknown kind
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Op: "test.Op", Err: underlying}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", got, underlying)
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name       string
		args       []interface{}
		wantOp     Op
		wantKind   Kind
		wantHasErr bool
	}{
		{
			name:       "with all args",
			args:       []interface{}{Op("test.Op"), KindNotFound, "context", errors.New("error")},
			wantOp:     "test.Op",
			wantKind:   KindNotFound,
			wantHasErr: true,
		},
		{
			name:       "with op and kind",
			args:       []interface{}{Op("test.Op"), KindInvalid, "just a message"},
			wantOp:     "test.Op",
			wantKind:   KindInvalid,
			wantHasErr: true, // Context becomes the error when no error is provided
		},
		{
			name:       "with just error",
			args:       []interface{}{errors.New("plain error")},
			wantOp:     "",
			wantKind:   KindUnknown,
			wantHasErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("E() did not return *Error, got %T", err)
			}
			if e.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if (e.Err != nil) != tt.wantHasErr {
				t.Errorf("Err presence = %v, want %v", e.Err != nil, tt.wantHasErr)
			}
		})
	}
}

func TestIs(t *testing.T) {
	netErr := BackendUnreachable("http://localhost:5000", errors.New("connection refused"))
	if !Is(netErr, KindNetwork) {
		t.Error("Is(netErr, KindNetwork) = false, want true")
	}
	if Is(netErr, KindTimeout) {
		t.Error("Is(netErr, KindTimeout) = true, want false")
	}
	if Is(errors.New("plain"), KindNetwork) {
		t.Error("Is(plain, KindNetwork) = true, want false")
	}

	// Wrapped errors should still match
	wrapped := fmt.Errorf("outer: %w", netErr)
	if !Is(wrapped, KindNetwork) {
		t.Error("Is(wrapped, KindNetwork) = false, want true")
	}
}

func TestGetKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"timeout error", BackendTimeout("ping", errors.New("deadline exceeded")), KindTimeout},
		{"server error", ServerError(500, "boom"), KindServer},
		{"config error", ConfigInvalid("bad url"), KindInvalid},
		{"plain error", errors.New("plain"), KindUnknown},
		{"wrapped server error", fmt.Errorf("x: %w", ServerError(502, "")), KindServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetKind(tt.err); got != tt.want {
				t.Errorf("GetKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServerError_DefaultDetail(t *testing.T) {
	err := ServerError(503, "")
	if got := err.Error(); got != "gateway.do: server error: 503" {
		t.Errorf("ServerError(503, \"\").Error() = %q", got)
	}
}
