// Package options provides shared utilities for option validation across packages.
package options

import (
	"fmt"
	"strings"
)

// Source names one way of supplying an input and whether it was used.
type Source struct {
	Name string
	Set  bool
}

// RequireExactlyOne ensures exactly one of sources is set. what names the
// input in error messages, e.g. "input document".
func RequireExactlyOne(what string, sources ...Source) error {
	var set, all []string
	for _, s := range sources {
		all = append(all, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("no %s specified: use one of %s", what, strings.Join(all, ", "))
	default:
		return fmt.Errorf("multiple %s sources specified (%s): use exactly one", what, strings.Join(set, ", "))
	}
}
