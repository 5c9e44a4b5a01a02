// SPDX-License-Identifier: MPL-2.0

package atat

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_SingleLine(t *testing.T) {
	directives, err := Parse("@gt-default@ true @@\n")
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(directives) != 1 {
		t.Fatalf("Parse() returned %d directives, want 1", len(directives))
	}
	if directives[0].Key != "gt-default" {
		t.Errorf("Key = %q, want %q", directives[0].Key, "gt-default")
	}
	if directives[0].Value != "true" {
		t.Errorf("Value = %q, want %q", directives[0].Value, "true")
	}
}

func TestParse_MultiLineValue(t *testing.T) {
	src := strings.Join([]string{
		"/*",
		"@gt-task-deps@",
		"fmt",
		"lint",
		"@@",
		"*/",
	}, "\n")

	directives, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(directives) != 1 {
		t.Fatalf("Parse() returned %d directives, want 1", len(directives))
	}
	if directives[0].Value != "fmt\nlint" {
		t.Errorf("Value = %q, want %q", directives[0].Value, "fmt\nlint")
	}
}

func TestParse_InteriorNewlinesPreserved(t *testing.T) {
	src := "@gt-mod-deps@\ngolang.org/x/mod v0.29.0\n\ngithub.com/spf13/cobra v1.10.2\n@@\n"

	directives, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	want := "golang.org/x/mod v0.29.0\n\ngithub.com/spf13/cobra v1.10.2"
	if directives[0].Value != want {
		t.Errorf("Value = %q, want %q", directives[0].Value, want)
	}
}

func TestParse_IndentedKeyIgnored(t *testing.T) {
	directives, err := Parse("  @gt-default@ true @@\n\t@gt-bootstrap@ true @@\n")
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(directives) != 0 {
		t.Errorf("Parse() returned %d directives for indented keys, want 0", len(directives))
	}
}

func TestParse_MultipleDirectives(t *testing.T) {
	src := strings.Join([]string{
		"/*",
		"@gt-default@ true @@",
		"@gt-min-version@ 0.2.0 @@",
		"*/",
		"package main",
	}, "\n")

	directives, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(directives) != 2 {
		t.Fatalf("Parse() returned %d directives, want 2", len(directives))
	}
	if directives[0].Key != "gt-default" || directives[1].Key != "gt-min-version" {
		t.Errorf("keys = %q, %q", directives[0].Key, directives[1].Key)
	}
	if directives[1].Value != "0.2.0" {
		t.Errorf("Value = %q, want %q", directives[1].Value, "0.2.0")
	}
}

func TestParse_DuplicateKeysKeptInOrder(t *testing.T) {
	src := "@gt-task-deps@ one @@\n@gt-task-deps@ two @@\n"

	directives, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(directives) != 2 {
		t.Fatalf("Parse() returned %d directives, want 2", len(directives))
	}
	if directives[0].Value != "one" || directives[1].Value != "two" {
		t.Errorf("values = %q, %q; want \"one\", \"two\"", directives[0].Value, directives[1].Value)
	}
}

func TestParse_KeyInsideOpenValueIsContent(t *testing.T) {
	src := "@gt-task-deps@\n@gt-default@ not a directive\n@@\n"

	directives, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(directives) != 1 {
		t.Fatalf("Parse() returned %d directives, want 1", len(directives))
	}
	want := "@gt-default@ not a directive"
	if directives[0].Value != want {
		t.Errorf("Value = %q, want %q", directives[0].Value, want)
	}
}

func TestParse_Unterminated(t *testing.T) {
	_, err := Parse("@gt-task-deps@\none\ntwo\n")
	if err == nil {
		t.Fatal("Parse() succeeded for unterminated directive, want MalformedDirectiveError")
	}

	var malformed *MalformedDirectiveError
	if !errors.As(err, &malformed) {
		t.Fatalf("Parse() error = %T, want *MalformedDirectiveError", err)
	}
	if malformed.Key != "gt-task-deps" {
		t.Errorf("Key = %q, want %q", malformed.Key, "gt-task-deps")
	}
	if malformed.Line != 1 {
		t.Errorf("Line = %d, want 1", malformed.Line)
	}
}

func TestParse_LoneAtIsNotADirective(t *testing.T) {
	directives, err := Parse("@\n@key-without-close\nplain text\n")
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(directives) != 0 {
		t.Errorf("Parse() returned %d directives, want 0", len(directives))
	}
}

func TestParse_EmptyValue(t *testing.T) {
	directives, err := Parse("@gt-task-deps@ @@\n")
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if directives[0].Value != "" {
		t.Errorf("Value = %q, want empty", directives[0].Value)
	}
}

func TestParse_CRLFInput(t *testing.T) {
	src := "@gt-task-deps@\r\none\r\ntwo\r\n@@\r\n"

	directives, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if directives[0].Value != "one\ntwo" {
		t.Errorf("Value = %q, want %q", directives[0].Value, "one\ntwo")
	}
}

func TestParse_ValueRoundTrip(t *testing.T) {
	// Parsing well-formed text yields the trimmed value verbatim.
	values := []string{
		"true",
		"one two three",
		"a\nb\nc",
		"path/with@sign v1.0.0",
	}
	for _, want := range values {
		directives, err := Parse("@k@ " + want + " @@\n")
		if err != nil {
			t.Fatalf("Parse() returned error for %q: %v", want, err)
		}
		if directives[0].Value != want {
			t.Errorf("Value = %q, want %q", directives[0].Value, want)
		}
	}
}
