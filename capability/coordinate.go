package capability

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCoordinate is returned when a coordinate string is not of the form group:artifact.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate identifies a library independent of its version.
type Coordinate struct {
	Group    string
	Artifact string
}

// ParseCoordinate parses a "group:artifact" string.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, fmt.Errorf("%w: %q (expected group:artifact)", ErrInvalidCoordinate, s)
	}
	return Coordinate{Group: parts[0], Artifact: parts[1]}, nil
}

// MustParseCoordinate is like ParseCoordinate but panics on error.
func MustParseCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact
}

// Less orders coordinates by group, then artifact.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Group != other.Group {
		return c.Group < other.Group
	}
	return c.Artifact < other.Artifact
}
