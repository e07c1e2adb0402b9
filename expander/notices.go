package expander

import (
	"fmt"

	"github.com/erraggy/langconf/internal/severity"
	"github.com/erraggy/langconf/parser"
)

// NoticeCategory identifies the type of merge notice.
type NoticeCategory string

const (
	// NoticeMergeConflict indicates a child value was dropped because it
	// could not be combined with the parent value.
	NoticeMergeConflict NoticeCategory = "merge_conflict"
	// NoticeInvalidOverrides indicates "overrides" was not an object and
	// was ignored.
	NoticeInvalidOverrides NoticeCategory = "invalid_overrides"
)

// MergeConflict is a non-fatal notice raised while merging a child document
// into its parent. The merged document keeps the parent value.
type MergeConflict struct {
	// Category identifies the type of notice
	Category NoticeCategory `json:"category"`
	// Key is the top-level key involved
	Key string `json:"key"`
	// BaseKind is the kind of the parent value (empty for invalid overrides)
	BaseKind parser.Kind `json:"base_kind,omitempty"`
	// ChildKind is the kind of the dropped child value
	ChildKind parser.Kind `json:"child_kind"`
	// Reference is the extends reference of the child
	Reference string `json:"reference"`
	// Message is a human-readable description
	Message string `json:"message"`
	// Severity is always warning today
	Severity severity.Severity `json:"severity"`
}

// String returns the notice message.
func (c *MergeConflict) String() string {
	return c.Message
}

// NewMergeConflict creates a notice for a key whose parent and child values
// cannot be merged.
func NewMergeConflict(key string, base, child parser.Kind, ref string) *MergeConflict {
	return &MergeConflict{
		Category:  NoticeMergeConflict,
		Key:       key,
		BaseKind:  base,
		ChildKind: child,
		Reference: ref,
		Message: fmt.Sprintf("cannot expand entry '%s': %s in %s, %s in child; keeping %s",
			key, base, ref, child, base),
		Severity: severity.SeverityWarning,
	}
}

// NewInvalidOverridesNotice creates a notice for an "overrides" value that
// is not an object.
func NewInvalidOverridesNotice(found parser.Kind, ref string) *MergeConflict {
	return &MergeConflict{
		Category:  NoticeInvalidOverrides,
		Key:       parser.KeyOverrides,
		ChildKind: found,
		Reference: ref,
		Message:   fmt.Sprintf("'%s' must be an object, got %s; ignored", parser.KeyOverrides, found),
		Severity:  severity.SeverityWarning,
	}
}
