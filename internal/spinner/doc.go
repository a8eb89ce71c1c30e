// Package spinner expands "spun" text templates.
//
// A template is plain text with optional choice groups written as {a|b|c}.
// Each expansion replaces every group with one of its options, drawn uniformly from a caller-supplied [Source].
//
// Parsing is fail-soft: malformed braces never produce an error, they stay in the output as literal text.
//   - "{a|b}" is a group with options "a" and "b"
//   - "{}" is a group with a single empty option
//   - "{a|{b|c}}" is the literal "{a|", the group {b|c}, then the literal "}" (groups do not nest)
//   - "{unterminated" and a stray "}" are literal text
//
// There is no escape syntax; "\{" is a backslash followed by a group opener.
//
// [Template.String] re-serializes a parsed template and reproduces its input byte for byte.
//
// # Batches
//
// Editors keep many templates in one text block. [ExpandBatch] splits the block with a delimiter, drops blank entries and expands each one:
//   - [TitleDelimiter] ("\n") treats every line as a template
//   - a rule such as [DescriptionDelimiter] ("---") is a marker that must sit on its own line
//   - any other delimiter, such as ";", splits wherever it appears
//
// # Randomness
//
// Expansion is deterministic for a fixed sequence of draws. Use [NewSource] with a seed in tests,
// [DefaultSource] for the process-global generator, and [NewLockedSource] to share a seeded source across goroutines.
package spinner
