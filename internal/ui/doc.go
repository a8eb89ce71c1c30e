// Package ui implements an interactive terminal preview of spun templates using bubbletea's Elm architecture.
//
// The preview shows every variant of the current text as a list, with a header giving the source,
// the number of entries and the number of distinct combinations.
//
// Keys:
//   - r spins again; with a fixed seed each respin advances the seed so output stays repeatable
//   - tab switches between titles and descriptions
//   - ? expands the help line
//   - q quits
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving results via the Msg union type.
// Expansion runs in a tea.Cmd through [tasks.Generator.ExpandText], so the interface never blocks on large batches.
package ui
