// SPDX-License-Identifier: MPL-2.0

package envbridge

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// EnvVar is the environment variable that carries the bridge file path to
// every child task process.
const EnvVar = "GOTASK_ENV_BRIDGE"

// Bridge is a file-backed environment store scoped to one invocation.
type Bridge struct {
	path string
}

// New returns a bridge backed by the file at path. The file does not need to
// exist yet.
func New(path string) *Bridge {
	return &Bridge{path: path}
}

// CreateTemp creates a bridge backed by a fresh temp file, so concurrent
// invocations on the same machine never observe each other's exports.
func CreateTemp() (*Bridge, error) {
	f, err := os.CreateTemp("", "gotask-bridge-*.env")
	if err != nil {
		return nil, fmt.Errorf("failed to create env bridge file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close env bridge file: %w", err)
	}
	return &Bridge{path: path}, nil
}

// Path returns the backing file path.
func (b *Bridge) Path() string {
	return b.path
}

// Load reads the current bridge state. A missing backing file yields an
// empty mapping rather than an error.
func (b *Bridge) Load() (map[string]string, error) {
	env := make(map[string]string)

	content, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return env, nil
		}
		return nil, fmt.Errorf("failed to read env bridge file '%s': %w", b.path, err)
	}

	if err := ParseEnv(env, content, b.path); err != nil {
		return nil, err
	}
	return env, nil
}

// Store rewrites the backing file with the given mapping in canonical form
// (sorted keys, quoted values). It fully replaces whatever the file held.
func (b *Bridge) Store(env map[string]string) error {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(quoteValue(env[key]))
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(b.path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write env bridge file '%s': %w", b.path, err)
	}
	return nil
}

// Remove deletes the backing file at the end of an invocation. A missing
// file is not an error.
func (b *Bridge) Remove() error {
	if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove env bridge file '%s': %w", b.path, err)
	}
	return nil
}

// AppendExport appends a single KEY=VALUE line to the bridge file at path.
// It is the write primitive used from inside task processes, which only know
// the bridge through GOTASK_ENV_BRIDGE.
func AppendExport(path, key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\n") {
		return fmt.Errorf("invalid env bridge key %q", key)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open env bridge file '%s': %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", key, quoteValue(value)); err != nil {
		return fmt.Errorf("failed to append to env bridge file '%s': %w", path, err)
	}
	return nil
}

// MergeInto copies every bridge pair into env, overriding existing keys.
func MergeInto(env, pairs map[string]string) {
	for key, value := range pairs {
		env[key] = value
	}
}

// ParseEnv parses dotenv-format content and merges it into env. Supported
// format:
//   - lines starting with # are comments
//   - empty lines are ignored
//   - KEY=value (unquoted)
//   - KEY="value" (double-quoted, escape sequences: \n, \r, \t, \\, \")
//   - KEY='value' (single-quoted, literal)
//   - an optional 'export ' prefix is ignored
//
// Later lines override earlier values for the same key, which is what makes
// a plain append a valid export. The filename parameter is used in error
// messages only.
func ParseEnv(env map[string]string, content []byte, filename string) error {
	lines := strings.Split(string(content), "\n")

	for i, line := range lines {
		lineNum := i + 1

		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")
		line = strings.TrimSpace(line)

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%s:%d: invalid format (missing '=')", filename, lineNum)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%s:%d: empty variable name", filename, lineNum)
		}

		parsed, err := parseValue(value)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", filename, lineNum, err)
		}

		env[key] = parsed
	}

	return nil
}

// parseValue parses a dotenv value, handling quoting and escape sequences.
func parseValue(value string) (string, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return "", nil
	}

	if value[0] == '"' {
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("unterminated double quote")
		}
		return unescapeDoubleQuoted(value[1 : len(value)-1]), nil
	}
	if value[0] == '\'' {
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unterminated single quote")
		}
		return value[1 : len(value)-1], nil
	}

	return value, nil
}

// unescapeDoubleQuoted processes escape sequences in a double-quoted value.
func unescapeDoubleQuoted(value string) string {
	var result strings.Builder
	result.Grow(len(value))

	i := 0
	for i < len(value) {
		if value[i] == '\\' && i+1 < len(value) {
			switch next := value[i+1]; next {
			case 'n':
				result.WriteByte('\n')
			case 'r':
				result.WriteByte('\r')
			case 't':
				result.WriteByte('\t')
			case '\\':
				result.WriteByte('\\')
			case '"':
				result.WriteByte('"')
			default:
				result.WriteByte('\\')
				result.WriteByte(next)
			}
			i += 2
			continue
		}
		result.WriteByte(value[i])
		i++
	}

	return result.String()
}

// quoteValue renders a value so ParseEnv reads it back verbatim. Plain
// values are written bare; anything with whitespace, quotes, or control
// characters is double-quoted with escapes.
func quoteValue(value string) string {
	if value != "" && !strings.ContainsAny(value, " \t\n\r\"'#\\") {
		return value
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
