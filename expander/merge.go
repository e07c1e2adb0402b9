package expander

import "github.com/erraggy/langconf/parser"

// merge builds a new document from base and child. Neither input is
// modified and the result aliases no slice or nested document of either.
func (e *Expander) merge(base, child *parser.Document, ref string, result *ExpandResult) *parser.Document {
	merged := base.Clone()

	for _, key := range child.Keys() {
		if key == parser.KeyExtends || key == parser.KeyOverrides {
			continue
		}
		childValue, _ := child.Get(key)
		baseValue, inBase := merged.Get(key)
		if !inBase {
			merged.Set(key, parser.CloneValue(childValue))
			continue
		}

		baseItems, baseIsArray := baseValue.([]any)
		childItems, childIsArray := childValue.([]any)
		if baseIsArray && childIsArray {
			joined := make([]any, 0, len(baseItems)+len(childItems))
			joined = append(joined, baseItems...)
			for _, item := range childItems {
				joined = append(joined, parser.CloneValue(item))
			}
			merged.Set(key, joined)
			continue
		}

		conflict := NewMergeConflict(key, parser.KindOf(baseValue), parser.KindOf(childValue), ref)
		result.Conflicts = append(result.Conflicts, conflict)
		e.logger.Warn(conflict.Message, "key", key, "extends", ref)
	}

	overrides, ok := child.Get(parser.KeyOverrides)
	if !ok {
		return merged
	}
	doc, isDoc := overrides.(*parser.Document)
	if !isDoc {
		notice := NewInvalidOverridesNotice(parser.KindOf(overrides), ref)
		result.Conflicts = append(result.Conflicts, notice)
		e.logger.Warn(notice.Message, "extends", ref)
		return merged
	}
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		merged.Set(key, parser.CloneValue(v))
	}
	return merged
}
