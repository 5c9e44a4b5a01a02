// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "scan task directory"},
			want: "failed to scan task directory",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "scan task directory", Resource: ".gotask"},
			want: "failed to scan task directory: .gotask",
		},
		{
			name: "operation, resource and cause",
			err: &ActionableError{
				Operation: "read task script",
				Resource:  ".gotask/build.task.go",
				Cause:     cause,
			},
			want: "failed to read task script: .gotask/build.task.go: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := WrapWithOperation(cause, "read task script")

	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	err := &ActionableError{
		Operation:   "run task",
		Resource:    "deploy",
		Suggestions: []string{"Check the task's exit status", "Re-run with --verbose"},
		Cause:       errors.New("exit status 1"),
	}

	got := err.Format(false)
	for _, want := range []string{
		"failed to run task: deploy: exit status 1",
		"• Check the task's exit status",
		"• Re-run with --verbose",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Error chain:") {
		t.Error("Format(false) included the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing the error chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "1. exit status 1") {
		t.Errorf("Format(true) missing the numbered cause:\n%s", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("unterminated directive")

	err := NewErrorContext().
		WithOperation("parse task directives").
		WithResource(".gotask/lint.task.go").
		WithSuggestion("Close the directive with @@").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil with an operation set")
	}
	if err.Operation != "parse task directives" {
		t.Errorf("Operation = %q", err.Operation)
	}
	if err.Resource != ".gotask/lint.task.go" {
		t.Errorf("Resource = %q", err.Resource)
	}
	if len(err.Suggestions) != 1 || err.Suggestions[0] != "Close the directive with @@" {
		t.Errorf("Suggestions = %v", err.Suggestions)
	}
	if !errors.Is(err, cause) {
		t.Error("Build() lost the wrapped cause")
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	if err := NewErrorContext().WithResource("x").Build(); err != nil {
		t.Errorf("Build() = %v, want nil without an operation", err)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want nil without an operation", err)
	}
}

func TestErrorContext_WithSuggestions(t *testing.T) {
	err := NewErrorContext().
		WithOperation("load config").
		WithSuggestions("Check the file exists", "Validate the schema").
		Build()

	if !err.HasSuggestions() {
		t.Fatal("HasSuggestions() = false")
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("Suggestions = %v, want 2 entries", err.Suggestions)
	}
}

func TestWrapWithContext_NilPassthrough(t *testing.T) {
	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v", got)
	}
	if got := WrapWithContext(nil, "anything", "res"); got != nil {
		t.Errorf("WrapWithContext(nil) = %v", got)
	}
}
