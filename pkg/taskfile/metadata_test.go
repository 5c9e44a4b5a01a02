// SPDX-License-Identifier: MPL-2.0

package taskfile

import (
	"errors"
	"reflect"
	"testing"

	"gotask-cli/pkg/atat"
)

func TestFromDirectives_Defaults(t *testing.T) {
	meta, err := FromDirectives("build", "/p/.gotask/build.task.go", false, nil)
	if err != nil {
		t.Fatalf("FromDirectives() returned error: %v", err)
	}
	if meta.Default || meta.Bootstrap {
		t.Errorf("zero directives should yield Default=false Bootstrap=false, got %+v", meta)
	}
	if meta.MinVersion != "" {
		t.Errorf("MinVersion = %q, want empty", meta.MinVersion)
	}
	if len(meta.ModDeps) != 0 || len(meta.TaskDeps) != 0 {
		t.Errorf("lists should be empty, got %+v", meta)
	}
}

func TestFromDirectives_BooleanLiteralTrueOnly(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"True", false},
		{"TRUE", false},
		{"yes", false},
		{"1", false},
		{"", false},
	}

	for _, tc := range cases {
		meta, err := FromDirectives("t", "/p", false, []atat.Directive{
			{Key: KeyBootstrap, Value: tc.value},
			{Key: KeyDefault, Value: tc.value},
		})
		if err != nil {
			t.Fatalf("FromDirectives(%q) returned error: %v", tc.value, err)
		}
		if meta.Bootstrap != tc.want || meta.Default != tc.want {
			t.Errorf("value %q: Bootstrap=%v Default=%v, want %v", tc.value, meta.Bootstrap, meta.Default, tc.want)
		}
	}
}

func TestFromDirectives_ListKeysSplitAndAccumulate(t *testing.T) {
	meta, err := FromDirectives("t", "/p", false, []atat.Directive{
		{Key: KeyTaskDeps, Value: "one two\nthree"},
		{Key: KeyTaskDeps, Value: "  four  "},
		{Key: KeyModDeps, Value: "golang.org/x/mod v0.29.0\n\ngithub.com/spf13/cobra v1.10.2"},
	})
	if err != nil {
		t.Fatalf("FromDirectives() returned error: %v", err)
	}

	wantTasks := []string{"one", "two", "three", "four"}
	if !reflect.DeepEqual(meta.TaskDeps, wantTasks) {
		t.Errorf("TaskDeps = %v, want %v", meta.TaskDeps, wantTasks)
	}

	wantMods := []string{"golang.org/x/mod", "v0.29.0", "github.com/spf13/cobra", "v1.10.2"}
	if !reflect.DeepEqual(meta.ModDeps, wantMods) {
		t.Errorf("ModDeps = %v, want %v", meta.ModDeps, wantMods)
	}
}

func TestFromDirectives_UnrecognizedKeysIgnored(t *testing.T) {
	meta, err := FromDirectives("t", "/p", false, []atat.Directive{
		{Key: "gt-future-feature", Value: "whatever"},
		{Key: KeyDefault, Value: "true"},
	})
	if err != nil {
		t.Fatalf("FromDirectives() returned error: %v", err)
	}
	if !meta.Default {
		t.Error("Default = false, want true")
	}
}

func TestFromDirectives_DuplicateBooleanLastWins(t *testing.T) {
	meta, err := FromDirectives("t", "/p", false, []atat.Directive{
		{Key: KeyDefault, Value: "true"},
		{Key: KeyDefault, Value: "false"},
	})
	if err != nil {
		t.Fatalf("FromDirectives() returned error: %v", err)
	}
	if meta.Default {
		t.Error("Default = true, want false (last directive wins)")
	}
}

func TestFromDirectives_MinVersion(t *testing.T) {
	meta, err := FromDirectives("t", "/p", false, []atat.Directive{
		{Key: KeyMinVersion, Value: "0.2.0"},
	})
	if err != nil {
		t.Fatalf("FromDirectives() returned error: %v", err)
	}
	if meta.MinVersion != "0.2.0" {
		t.Errorf("MinVersion = %q, want %q", meta.MinVersion, "0.2.0")
	}
}

func TestFromDirectives_InvalidMinVersion(t *testing.T) {
	for _, value := range []string{"1.2", "1.2.3.4", "1.x.3", "", "v1.2.3", "one.two.three"} {
		_, err := FromDirectives("t", "/p", false, []atat.Directive{
			{Key: KeyMinVersion, Value: value},
		})
		if err == nil {
			t.Errorf("FromDirectives() accepted invalid version %q", value)
			continue
		}

		var invalid *InvalidVersionStringError
		if !errors.As(err, &invalid) {
			t.Errorf("error for %q = %T, want *InvalidVersionStringError", value, err)
			continue
		}
		if invalid.Task != "t" || invalid.Value != value {
			t.Errorf("InvalidVersionStringError = %+v", invalid)
		}
	}
}

func TestParseVersion_Canonical(t *testing.T) {
	got, err := ParseVersion(" 01.2.010 ")
	if err != nil {
		t.Fatalf("ParseVersion() returned error: %v", err)
	}
	if got != "1.2.10" {
		t.Errorf("ParseVersion() = %q, want %q", got, "1.2.10")
	}
}

func TestDependsOn(t *testing.T) {
	meta := &Metadata{TaskDeps: []string{"fmt", "lint"}}
	if !meta.DependsOn("lint") {
		t.Error("DependsOn(lint) = false, want true")
	}
	if meta.DependsOn("Lint") {
		t.Error("DependsOn(Lint) = true, want false (case-sensitive)")
	}
}
