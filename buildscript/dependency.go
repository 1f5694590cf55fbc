// Package buildscript extracts resolved artifact coordinates from build inputs.
package buildscript

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/ecocap/capability"
	"github.com/LegacyCodeHQ/ecocap/vcs"
)

// Dependency is one declared module with its requested version.
type Dependency struct {
	Configuration string
	Coordinate    capability.Coordinate
	// Version is empty when the declaration leaves it to a platform or catalog.
	Version string
	Line    int
}

func (d Dependency) String() string {
	if d.Version == "" {
		return d.Coordinate.String()
	}
	return d.Coordinate.String() + ":" + d.Version
}

// ParseNotation parses Gradle's "group:artifact[:version[:classifier]][@ext]" form.
func ParseNotation(notation string) (capability.Coordinate, string, error) {
	notation = strings.TrimSpace(notation)
	if at := strings.IndexByte(notation, '@'); at >= 0 {
		notation = notation[:at]
	}

	parts := strings.Split(notation, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return capability.Coordinate{}, "", fmt.Errorf("%w: %q", capability.ErrInvalidCoordinate, notation)
	}
	c, err := capability.ParseCoordinate(parts[0] + ":" + parts[1])
	if err != nil {
		return capability.Coordinate{}, "", err
	}
	version := ""
	if len(parts) >= 3 {
		version = parts[2]
	}
	return c, version, nil
}

// ParseCoordinateList reads one notation per line. Blank lines and # comments are ignored.
func ParseCoordinateList(src []byte) ([]Dependency, error) {
	var deps []Dependency
	scanner := bufio.NewScanner(bytes.NewReader(src))
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		c, version, err := ParseNotation(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		deps = append(deps, Dependency{Coordinate: c, Version: version, Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return deps, nil
}

// IsKotlinScript reports whether path names a Gradle Kotlin DSL script.
func IsKotlinScript(path string) bool {
	return filepath.Ext(path) == ".kts"
}

// ParseFile reads path through reader and parses it by file type.
func ParseFile(path string, reader vcs.ContentReader) ([]Dependency, error) {
	src, err := reader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var deps []Dependency
	if IsKotlinScript(path) {
		deps, err = ParseKotlinScript(src)
	} else {
		deps, err = ParseCoordinateList(src)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return deps, nil
}
