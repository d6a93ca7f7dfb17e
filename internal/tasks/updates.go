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
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	ClearCatalog Phase = iota
	FetchSource
	StoreCards
	Complete
)

func (p Phase) String() string {
	switch p {
	case ClearCatalog:
		return "clear_catalog"
	case FetchSource:
		return "fetch_source"
	case StoreCards:
		return "store_cards"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func clearCatalogUpdate(removed int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ClearCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Cleared %d cards from the catalog", removed),
	}
}

func fetchSourceUpdate(step, total int, source string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching %s...", step, total, source),
	}
}

func storedSourceUpdate(step, total int, res SourceResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   StoreCards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d new, %d updated)", step, total, res.Source, res.Inserted, res.Updated),
		Data:    res,
	}
}

func failedSourceUpdate(step, total int, res SourceResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   StoreCards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Source, res.Error),
		Data:    res,
	}
}

func completeUpdate(result *ImportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Imported %d sources (%d failed): %d new, %d updated", result.Succeeded, result.Failed, result.Inserted, result.Updated),
		Data:    result,
	}
}
