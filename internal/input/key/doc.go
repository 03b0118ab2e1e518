// Package key parses, formats and matches keyboard binding strings.
//
// A binding string is written as zero or more modifier names followed by a
// key identifier, joined with "+":
//
//   - Bare keys: "j", "F5", "ArrowLeft"
//   - With modifiers: "Shift+J", "Ctrl+Shift+K", "cmd+k"
//
// Modifier names are case-insensitive and may appear in any order. Formatting
// always emits them in the canonical order Ctrl, Alt, Shift, Meta.
//
// Key identifiers are not checked against a fixed vocabulary: whatever the
// input surface reports ("ArrowLeft", "MediaPlayPause", "J") can be bound.
//
// # Matching
//
// Matches compares an Input against a binding string. All four modifier flags
// must be equal; pressing an extra modifier is a non-match.
package key
