package expander

import "github.com/erraggy/langconf/parser"

// ExpandResult is the outcome of an expansion.
type ExpandResult struct {
	// Document is the merged document. It shares no memory with the inputs.
	Document *parser.Document
	// Conflicts lists non-fatal merge notices in the order they arose
	Conflicts []*MergeConflict
	// StructureIssues is filled when the structure check is enabled
	StructureIssues []parser.StructureIssue
	// Chain lists the locations loaded: the root first when it was loaded
	// from a reference, then each parent in turn
	Chain []string
}

// HasConflicts reports whether any merge notice was recorded.
func (r *ExpandResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// ConflictKeys returns the keys of all merge notices, in order.
func (r *ExpandResult) ConflictKeys() []string {
	keys := make([]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		keys = append(keys, c.Key)
	}
	return keys
}
