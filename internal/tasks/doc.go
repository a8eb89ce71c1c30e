// Package tasks orchestrates template expansion with real-time progress reporting.
//
// # Core Operations
//
// [Generator] offers three operations:
//
//  1. [Generator.Generate] : Expand a stored text file
//     - Loads the profile's titles or descriptions through a [TextFileSource]
//     - Expands every entry Count times from one random source
//     - Optionally saves each variant through an [ExpansionSink]
//
//  2. [Generator.ExpandText] : Expand ad hoc text the same way, without storage
//
//  3. [Generator.ExpandFiles] : Expand many files concurrently
//     - Files are usually collected with [LoadFiles] and a doublestar glob
//     - A shared token bucket limits how fast files are read
//     - Results keep the order of the input paths
//
// # Progress Reporting
//
// All operations report through optional, non-blocking channels.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default so a slow reader never stalls expansion.
//
// # Determinism
//
// A zero seed draws from the process-wide generator.
// Any other seed makes output repeatable; [Generator.ExpandFiles] derives one seed per file from its position.
package tasks
