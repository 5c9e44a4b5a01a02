// SPDX-License-Identifier: MPL-2.0

// Package atat implements the AtAt directive format used to embed task
// metadata in plain source text.
//
// A directive is a key/value pair delimited with at signs:
//
//	@gt-default@ true @@
//	@gt-task-deps@
//	fmt
//	lint
//	@@
//
// Rules of the format:
//   - protocol: `@key@ value @@`
//   - the opening `@` of a key must be the very first character of a line
//   - the value runs until the literal two-character terminator `@@` and may
//     span multiple lines
//   - text between the delimiters is content, never a nested directive
//
// Directives are usually placed inside a comment block of the task's source
// file, but the scanner itself is comment-syntax-agnostic.
package atat
