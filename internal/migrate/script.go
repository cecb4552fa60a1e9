package migrate

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/trek/internal/shared"
)

const (
	upMarker   = "-- migrate:up"
	downMarker = "-- migrate:down"
)

// Script represents a single revision script: a metadata header followed by
// up and down SQL sections.
type Script struct {
	ID      string
	Parent  string
	Message string
	Created time.Time
	Up      string
	Down    string
	Path    string
}

// ParseScript parses a revision script from its raw contents.
// The path is recorded for error reporting only.
func ParseScript(path string, data []byte) (*Script, error) {
	script := &Script{Path: path}

	// 0 = header, 1 = up section, 2 = down section
	section := 0
	var up, down []string

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)

		switch trimmed {
		case upMarker:
			if section != 0 {
				return nil, fmt.Errorf("%s: duplicate or misplaced %q marker", path, upMarker)
			}
			section = 1
			continue
		case downMarker:
			if section != 1 {
				return nil, fmt.Errorf("%s: %q marker must follow the up section", path, downMarker)
			}
			section = 2
			continue
		}

		switch section {
		case 0:
			if err := script.parseHeaderLine(trimmed); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		case 1:
			up = append(up, line)
		case 2:
			down = append(down, line)
		}
	}

	if section != 2 {
		return nil, fmt.Errorf("%s: missing %q and %q section markers", path, upMarker, downMarker)
	}
	if script.ID == "" {
		return nil, fmt.Errorf("%s: missing revision id header", path)
	}

	script.Up = strings.Join(up, "\n")
	script.Down = strings.Join(down, "\n")
	return script, nil
}

// parseHeaderLine reads one "-- key: value" metadata comment. Blank lines and
// unrecognized comments in the header are ignored.
func (s *Script) parseHeaderLine(line string) error {
	if !strings.HasPrefix(line, "--") {
		if line != "" {
			return fmt.Errorf("unexpected SQL before %q marker", upMarker)
		}
		return nil
	}

	key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "--")), ":")
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)

	switch strings.TrimSpace(key) {
	case "revision":
		s.ID = value
	case "parent":
		s.Parent = value
	case "message":
		s.Message = value
	case "created":
		if value == "" {
			return nil
		}
		created, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return fmt.Errorf("invalid created timestamp %q: %w", value, err)
		}
		s.Created = created
	}
	return nil
}

// Render returns the script's file contents, with empty up/down sections when
// the script is a freshly generated stub.
func (s *Script) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- revision: %s\n", s.ID)
	fmt.Fprintf(&b, "-- parent: %s\n", s.Parent)
	fmt.Fprintf(&b, "-- message: %s\n", s.Message)
	fmt.Fprintf(&b, "-- created: %s\n", s.Created.UTC().Format(time.RFC3339))
	b.WriteString("\n")
	b.WriteString(upMarker + "\n")
	b.WriteString(s.Up)
	if !strings.HasSuffix(s.Up, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(downMarker + "\n")
	b.WriteString(s.Down)
	if !strings.HasSuffix(s.Down, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// Filename returns the canonical filename for the script, an id prefix plus a
// slug of the message.
func (s *Script) Filename() string {
	slug := shared.Slugify(s.Message)
	if slug == "" {
		return s.ID + ".sql"
	}
	return s.ID + "_" + slug + ".sql"
}

// UpStatements returns the executable statements of the up section.
func (s *Script) UpStatements() []string {
	return splitStatements(s.Up)
}

// DownStatements returns the executable statements of the down section.
func (s *Script) DownStatements() []string {
	return splitStatements(s.Down)
}

// splitStatements splits a SQL section on semicolons, dropping comments and
// blank statements.
func splitStatements(section string) []string {
	var statements []string
	for _, stmt := range strings.Split(section, ";") {
		stmt = removeComments(stmt)
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}

// removeComments removes SQL comments from a statement.
func removeComments(sql string) string {
	lines := strings.Split(sql, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
