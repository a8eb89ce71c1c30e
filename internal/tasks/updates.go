package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Parse Phase = iota
	Expand
	Persist
)

func (p Phase) String() string {
	switch p {
	case Parse:
		return "parse"
	case Expand:
		return "expand"
	case Persist:
		return "persist"
	default:
		return ""
	}
}

func loadingUpdate(profile, kind string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Parse,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Loading %s for %s...", kind, profile),
	}
}

func parsedUpdate(entries, combinations int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Parse,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Parsed %d entries (%d combinations)", entries, combinations),
	}
}

func expandEntryUpdate(step, total int, entry EntryResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Expand,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %d variants", step, total, len(entry.Variants)),
		Data:    entry,
	}
}

func persistUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Persist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Saving expansions...", step, total),
	}
}

func fileExpandedUpdate(step, total int, res FileResult) ProgressUpdate {
	if res.Err != nil {
		return ProgressUpdate{
			Phase:   Expand,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Path, res.Err),
			Data:    res,
		}
	}
	return ProgressUpdate{
		Phase:   Expand,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d entries)", step, total, res.Path, len(res.Variants)),
		Data:    res,
	}
}
