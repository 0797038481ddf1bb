package cmd

import (
	"errors"
	"testing"
)

func TestContextError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ContextError
		want string
	}{
		{
			name: "op and path",
			err:  &ContextError{Op: "site root", Path: "/srv/site", Err: errors.New("permission denied")},
			want: "site root: /srv/site: permission denied",
		},
		{
			name: "op only",
			err:  &ContextError{Op: "write report", Err: errors.New("locked")},
			want: "write report: locked",
		},
		{
			name: "path only",
			err:  &ContextError{Path: "content/index.mdx", Err: errors.New("not found")},
			want: "content/index.mdx: not found",
		},
		{
			name: "error only",
			err:  &ContextError{Err: errors.New("unknown error")},
			want: "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextError_Unwrap(t *testing.T) {
	inner := errors.New("inner error")
	err := &ContextError{Op: "read", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("ContextError should unwrap to inner error")
	}
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error returns 0", nil, 0},
		{"generic error returns 1", errors.New("something went wrong"), 1},
		{"broken links returns 1", &BrokenLinksError{Count: 4}, 1},
		{"context error wrapping generic returns 1", &ContextError{Op: "read", Err: errors.New("fail")}, 1},
		{"context error wrapping exit coder", &ContextError{Op: "check", Err: exitCodeErr(3)}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFromError(tt.err); got != tt.want {
				t.Errorf("ExitCodeFromError() = %d, want %d", got, tt.want)
			}
		})
	}
}

type exitCodeErr int

func (e exitCodeErr) Error() string { return "exit" }
func (e exitCodeErr) ExitCode() int { return int(e) }

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "simple error",
			err:  errors.New("something failed"),
			want: "linkcheck: something failed\n",
		},
		{
			name: "context error with op and path",
			err:  &ContextError{Op: "site root", Path: "/srv/site", Err: errors.New("no such file or directory")},
			want: "linkcheck: site root: /srv/site: no such file or directory\n",
		},
		{
			name: "broken links",
			err:  &BrokenLinksError{Count: 2},
			want: "linkcheck: 2 broken links found\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			if got != tt.want {
				t.Errorf("FormatError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootCmd_SilenceErrors(t *testing.T) {
	cmd := NewRootCmd()
	if !cmd.SilenceErrors {
		t.Error("root command should have SilenceErrors = true for consistent error handling")
	}
}
