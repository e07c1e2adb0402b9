package parser

import "fmt"

// StructureIssue describes a key a language configuration is expected to
// carry but does not, or carries with the wrong shape.
type StructureIssue struct {
	// Key is the top-level key that was checked
	Key string
	// Expected is the required kind, or empty when only presence is required
	Expected Kind
	// Found is the kind present, or empty when the key is missing
	Found Kind
}

// String returns a human-readable description.
func (i StructureIssue) String() string {
	switch {
	case i.Found == "" && i.Expected != "":
		return fmt.Sprintf("cannot find '%s' or it is not an %s", i.Key, i.Expected)
	case i.Found == "":
		return fmt.Sprintf("cannot find '%s'", i.Key)
	default:
		return fmt.Sprintf("'%s' is %s, expected %s", i.Key, i.Found, i.Expected)
	}
}

// requiredShape lists the top-level keys of a language configuration and the
// kind each must have. An empty kind means any value is accepted.
var requiredShape = []struct {
	key  string
	kind Kind
}{
	{"brackets", KindArray},
	{"autoClosingPairs", KindArray},
	{"surroundingPairs", KindArray},
	{"wordPattern", ""},
}

// CheckStructure runs the advisory language-configuration check. Every
// problem is returned; none of them should stop parsing or expansion.
func CheckStructure(doc *Document) []StructureIssue {
	var issues []StructureIssue
	for _, req := range requiredShape {
		v, ok := doc.Get(req.key)
		if !ok {
			issues = append(issues, StructureIssue{Key: req.key, Expected: req.kind})
			continue
		}
		if req.kind != "" && KindOf(v) != req.kind {
			issues = append(issues, StructureIssue{Key: req.key, Expected: req.kind, Found: KindOf(v)})
		}
	}
	return issues
}
