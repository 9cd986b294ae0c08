// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, output capture and kind helpers

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/raykroeker/vimfiles/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "manifest_error",
			code:    errors.ErrManifestInvalid,
			message: "plugin has no owner",
			wantStr: "[MANIFEST_INVALID] plugin has no owner",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrLinkInvalid, "link %q escapes %s", "../x", "/cfg")
	want := `link "../x" escapes /cfg`
	if err.Message != want {
		t.Errorf("Newf() message = %q, want %q", err.Message, want)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestErrorIncludesOutput(t *testing.T) {
	err := errors.Wrap(stderrors.New("exit status 1"), errors.ErrFetchClone, "clone acme/theme-pack").
		WithDetail(errors.DetailOutput, "fatal: permission denied\n")

	want := "[FETCH_CLONE] clone acme/theme-pack: exit status 1\nfatal: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := errors.GetOutput(fmt.Errorf("run: %w", err)); got != "fatal: permission denied\n" {
		t.Errorf("GetOutput() = %q", got)
	}
}

func TestWithDetails(t *testing.T) {
	details := map[string]interface{}{
		"path":  "/test/path",
		"owner": "acme",
	}

	err := errors.New(errors.ErrLinkCreate, "cannot link").WithDetails(details)

	for k, v := range details {
		if err.Details[k] != v {
			t.Errorf("WithDetails() %s = %v, want %v", k, err.Details[k], v)
		}
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrFetchPull, "error 1")
	err2 := errors.New(errors.ErrFetchPull, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !err1.Is(err2) {
		t.Error("Is() should return true for same code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
	if !stderrors.Is(fmt.Errorf("ctx: %w", err1), err2) {
		t.Error("errors.Is() should work through wrapping")
	}
}

func TestKindHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		manifest bool
		fetch    bool
		link     bool
	}{
		{"manifest", errors.New(errors.ErrManifestParse, "bad"), true, false, false},
		{"clone", errors.New(errors.ErrFetchClone, "bad"), false, true, false},
		{"pull_wrapped", fmt.Errorf("plugin x: %w", errors.New(errors.ErrFetchPull, "bad")), false, true, false},
		{"link", errors.New(errors.ErrLinkDir, "bad"), false, false, true},
		{"standard", stderrors.New("plain"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsManifestError(tt.err); got != tt.manifest {
				t.Errorf("IsManifestError() = %v, want %v", got, tt.manifest)
			}
			if got := errors.IsFetchError(tt.err); got != tt.fetch {
				t.Errorf("IsFetchError() = %v, want %v", got, tt.fetch)
			}
			if got := errors.IsLinkError(tt.err); got != tt.link {
				t.Errorf("IsLinkError() = %v, want %v", got, tt.link)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrCanceled, "stop")); got != errors.ErrCanceled {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("standard error")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v", got)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrManifestLoad, "cannot read manifest")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
		t.Error("Top level should have ErrConfigLoad code")
	}

	var vErr *errors.VimfilesError
	if stderrors.As(configErr.Unwrap(), &vErr) && !errors.IsErrorCode(vErr, errors.ErrManifestLoad) {
		t.Error("Middle error should have ErrManifestLoad code")
	}

	if !stderrors.Is(configErr, rootCause) {
		t.Error("Should find root cause with errors.Is")
	}
}
