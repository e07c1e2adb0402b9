// Package expander resolves the extends/overrides inheritance of
// configuration documents.
//
// A document may name a parent with "extends" and list unconditional
// replacements under "overrides":
//
//	{
//		"extends": "../base/language-configuration.json",
//		"brackets": [["<", ">"]],
//		"overrides": {"wordPattern": "[\\w-]+"}
//	}
//
// Expansion merges the child into a copy of its parent:
//
//   - a key the parent lacks is copied from the child
//   - a key both hold as arrays becomes parent elements followed by child
//     elements, in a new array
//   - any other key the parent already has keeps the parent value, and a
//     MergeConflict notice is recorded on the result
//   - every "overrides" entry then replaces whatever is there
//
// Expand resolves exactly one parent. ExpandAll expands the parent first,
// so a chain of any length collapses into one document; it rejects cycles
// with an *lcerrors.CycleError and stops at WithMaxDepth.
//
// A failed parent fetch or parse fails the whole expansion with an
// *lcerrors.ExpansionError. ExpandFile writes its output only after every
// step succeeded, so a failure never leaves a partial file behind.
package expander
