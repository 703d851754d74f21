package versionstore

import (
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// VersionLog maps application names to their current version.
type VersionLog map[string]int

// Next returns the version that follows name's current one.
func (l VersionLog) Next(name string) int {
	return l[name] + 1
}

// Names returns the application names in sorted order.
func (l VersionLog) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every key is non-empty valid UTF-8 and every version is positive.
// JSON rewrites invalid UTF-8 as U+FFFD, so such keys would not survive a round trip.
func (l VersionLog) Validate() error {
	for _, name := range l.Names() {
		if name == "" {
			return errors.New("empty application name")
		}
		if !utf8.ValidString(name) {
			return errors.Errorf("application name %q is not valid UTF-8", name)
		}
		if v := l[name]; v < 1 {
			return errors.Errorf("application %q has non-positive version %d", name, v)
		}
	}
	return nil
}
