// Package models defines domain entities and persistence interfaces for ytspin.
//
// The package contains three categories of types:
//
// 1. Text kinds: [Kind] names the two template files a profile owns (titles, descriptions) and maps each to its batch delimiter.
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [TextFile] : A profile's titles or descriptions template text
//   - [Expansion] : One generated variant of a text file entry
//
// 3. Samples: the editor's "Add Samples" fixtures ([SampleTitles], [SampleDescriptions]) and [AppendSamples].
//
// All persistent entities implement the Model interface providing ID, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
