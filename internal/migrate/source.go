package migrate

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/desertthunder/trek/internal/shared"
)

// Chain holds revision scripts ordered from base to head.
//
// A chain is linear: exactly one script has no parent (the base) and every
// other script names exactly one existing parent. Branches, cycles, and
// orphaned parents are rejected at load time.
type Chain struct {
	ordered []*Script
	byID    map[string]*Script
}

// NewChain validates the parent links of the given scripts and returns them
// as an ordered chain.
func NewChain(scripts []*Script) (*Chain, error) {
	chain := &Chain{byID: make(map[string]*Script, len(scripts))}
	if len(scripts) == 0 {
		return chain, nil
	}

	for _, script := range scripts {
		if _, ok := chain.byID[script.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate revision id %s", shared.ErrBrokenChain, script.ID)
		}
		chain.byID[script.ID] = script
	}

	children := make(map[string]*Script, len(scripts))
	var base *Script

	for _, script := range scripts {
		if script.Parent == "" {
			if base != nil {
				return nil, fmt.Errorf("%w: multiple base revisions (%s, %s)", shared.ErrBrokenChain, base.ID, script.ID)
			}
			base = script
			continue
		}
		if _, ok := chain.byID[script.Parent]; !ok {
			return nil, fmt.Errorf("%w: revision %s references unknown parent %s", shared.ErrBrokenChain, script.ID, script.Parent)
		}
		if prev, ok := children[script.Parent]; ok {
			return nil, fmt.Errorf("%w: revisions %s and %s share parent %s", shared.ErrBrokenChain, prev.ID, script.ID, script.Parent)
		}
		children[script.Parent] = script
	}

	if base == nil {
		return nil, fmt.Errorf("%w: no base revision (cycle in parent links)", shared.ErrBrokenChain)
	}

	chain.ordered = make([]*Script, 0, len(scripts))
	for script := base; script != nil; script = children[script.ID] {
		chain.ordered = append(chain.ordered, script)
	}

	if len(chain.ordered) != len(scripts) {
		return nil, fmt.Errorf("%w: %d of %d revisions unreachable from base %s",
			shared.ErrBrokenChain, len(scripts)-len(chain.ordered), len(scripts), base.ID)
	}

	return chain, nil
}

// LoadDir reads every .sql revision script in the filesystem root and
// resolves them into a [Chain].
func LoadDir(fsys fs.FS) (*Chain, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var scripts []*Script
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read revision script %s: %w", name, err)
		}

		script, err := ParseScript(name, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse revision script: %w", err)
		}
		scripts = append(scripts, script)
	}

	return NewChain(scripts)
}

// Len returns the number of revisions on the chain.
func (c *Chain) Len() int {
	return len(c.ordered)
}

// Scripts returns the revisions ordered base to head.
func (c *Chain) Scripts() []*Script {
	return c.ordered
}

// Head returns the newest revision, or nil for an empty chain.
func (c *Chain) Head() *Script {
	if len(c.ordered) == 0 {
		return nil
	}
	return c.ordered[len(c.ordered)-1]
}

// Get returns the revision with the given id.
func (c *Chain) Get(id string) (*Script, bool) {
	script, ok := c.byID[id]
	return script, ok
}

// IndexOf returns the position of the given revision id on the chain.
func (c *Chain) IndexOf(id string) (int, bool) {
	for i, script := range c.ordered {
		if script.ID == id {
			return i, true
		}
	}
	return 0, false
}
