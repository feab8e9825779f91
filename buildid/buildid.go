// Package buildid mints correlation identifiers for a single invocation of
// the table-generation pipeline, so log lines and error reports for one
// build can be tied together even when several builds run concurrently.
package buildid

import "github.com/google/uuid"

// ID is a build correlation identifier.
type ID struct {
	u uuid.UUID
}

// New mints a fresh, random build ID.
func New() ID {
	return ID{u: uuid.New()}
}

// Parse reconstructs a build ID previously rendered by String, e.g. one read
// back out of a log line or report file.
func Parse(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID{u: u}, nil
}

func (id ID) String() string { return id.u.String() }
