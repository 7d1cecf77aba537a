// Package cleanup tracks the files created while handling one upload so
// they can be removed in one place when the request does not get accepted.
package cleanup

import (
	"os"

	"github.com/rs/zerolog"
)

type List struct {
	log      *zerolog.Logger
	paths    []string
	released bool
}

func New(log *zerolog.Logger) *List {
	return &List{log: log}
}

// Add registers a path for removal. Paths that never got written are fine;
// Run ignores files that do not exist.
func (l *List) Add(path string) {
	l.paths = append(l.paths, path)
}

// Release marks the request accepted; a subsequent Run removes nothing.
func (l *List) Release() {
	l.released = true
}

// Run removes every registered file, best effort. Failed deletes are logged
// and do not stop the rest of the list.
func (l *List) Run() {
	if l.released {
		return
	}
	for _, path := range l.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			l.log.Warn().Err(err).Str("path", path).Msg("failed to remove file during request cleanup")
		}
	}
}
