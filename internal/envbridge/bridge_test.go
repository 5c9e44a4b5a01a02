// SPDX-License-Identifier: MPL-2.0

package envbridge

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFileYieldsEmptyMapping(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "absent.env"))

	env, err := b.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(env) != 0 {
		t.Errorf("Load() = %v, want empty", env)
	}
}

func TestStoreLoad_RoundTrip(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "bridge.env"))

	want := map[string]string{
		"PLAIN":     "value",
		"SPACED":    "two words",
		"MULTILINE": "a\nb",
		"QUOTED":    `say "hi"`,
		"EMPTY":     "",
		"TABBED":    "a\tb",
		"HASHY":     "a # b",
	}
	if err := b.Store(want); err != nil {
		t.Fatalf("Store() returned error: %v", err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %v, want %v", got, want)
	}
}

func TestStore_ReplacesPriorState(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "bridge.env"))

	if err := b.Store(map[string]string{"OLD": "1"}); err != nil {
		t.Fatal(err)
	}
	if err := b.Store(map[string]string{"NEW": "2"}); err != nil {
		t.Fatal(err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]string{"NEW": "2"}) {
		t.Errorf("Load() = %v, want only NEW", got)
	}
}

func TestAppendExport_VisibleOnNextLoad(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "bridge.env"))
	if err := b.Store(map[string]string{"BASE": "x"}); err != nil {
		t.Fatal(err)
	}

	// A task process appends through the path it got from GOTASK_ENV_BRIDGE.
	if err := AppendExport(b.Path(), "EXPORTED", "from task"); err != nil {
		t.Fatalf("AppendExport() returned error: %v", err)
	}
	if err := AppendExport(b.Path(), "BASE", "overridden"); err != nil {
		t.Fatalf("AppendExport() returned error: %v", err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	want := map[string]string{"BASE": "overridden", "EXPORTED": "from task"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestAppendExport_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.env")
	if err := AppendExport(path, "KEY", "value"); err != nil {
		t.Fatalf("AppendExport() returned error: %v", err)
	}

	got, err := New(path).Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got["KEY"] != "value" {
		t.Errorf("Load()[KEY] = %q, want %q", got["KEY"], "value")
	}
}

func TestAppendExport_RejectsBadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.env")
	for _, key := range []string{"", "A=B", "A\nB"} {
		if err := AppendExport(path, key, "v"); err == nil {
			t.Errorf("AppendExport(%q) succeeded, want error", key)
		}
	}
}

func TestCreateTemp_SeparateInvocationsSeparateFiles(t *testing.T) {
	b1, err := CreateTemp()
	if err != nil {
		t.Fatalf("CreateTemp() returned error: %v", err)
	}
	defer func() { _ = b1.Remove() }()

	b2, err := CreateTemp()
	if err != nil {
		t.Fatalf("CreateTemp() returned error: %v", err)
	}
	defer func() { _ = b2.Remove() }()

	if b1.Path() == b2.Path() {
		t.Fatalf("CreateTemp() reused path %s", b1.Path())
	}

	if err := b1.Store(map[string]string{"ONLY_IN_ONE": "yes"}); err != nil {
		t.Fatal(err)
	}
	env2, err := b2.Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, leaked := env2["ONLY_IN_ONE"]; leaked {
		t.Error("export from one invocation leaked into another bridge")
	}
}

func TestRemove_MissingFileIsNotAnError(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "never-created.env"))
	if err := b.Remove(); err != nil {
		t.Errorf("Remove() returned error: %v", err)
	}
}

func TestParseEnv_Format(t *testing.T) {
	content := []byte("# comment\n\nexport EXPORTED=1\nPLAIN=bare\nDQ=\"a\\nb\"\nSQ='lit\\eral'\r\n")

	env := make(map[string]string)
	if err := ParseEnv(env, content, "test.env"); err != nil {
		t.Fatalf("ParseEnv() returned error: %v", err)
	}

	want := map[string]string{
		"EXPORTED": "1",
		"PLAIN":    "bare",
		"DQ":       "a\nb",
		"SQ":       `lit\eral`,
	}
	if !reflect.DeepEqual(env, want) {
		t.Errorf("ParseEnv() = %v, want %v", env, want)
	}
}

func TestParseEnv_Malformed(t *testing.T) {
	for _, content := range []string{"NOEQUALS\n", "=value\n", "K=\"unterminated\n"} {
		env := make(map[string]string)
		if err := ParseEnv(env, []byte(content), "bad.env"); err == nil {
			t.Errorf("ParseEnv(%q) succeeded, want error", content)
		}
	}
}

func TestMergeInto(t *testing.T) {
	env := map[string]string{"A": "keep", "B": "old"}
	MergeInto(env, map[string]string{"B": "new", "C": "added"})

	want := map[string]string{"A": "keep", "B": "new", "C": "added"}
	if !reflect.DeepEqual(env, want) {
		t.Errorf("MergeInto() = %v, want %v", env, want)
	}
}

func TestStore_FilePermissions(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "bridge.env"))
	if err := b.Store(map[string]string{"K": "v"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(b.Path())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("bridge file mode = %o, want 600", perm)
	}
}
