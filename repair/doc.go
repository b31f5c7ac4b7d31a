// Package repair parses JSON text strictly and, when that fails, applies a
// fixed sequence of textual repairs before trying once more.
//
// The repairs are heuristics for a small set of common defects: trailing
// commas before a closer, unquoted object keys and an unterminated string at
// the end of the text. They operate on raw text with regular expressions and
// do not understand string literals, so a key-shaped substring inside a
// string value can be rewritten as well.
//
// Every function in this package is pure and safe for concurrent use.
package repair
