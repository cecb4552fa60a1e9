package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Revision chain errors
	ErrBrokenChain      = fmt.Errorf("broken revision chain")
	ErrRevisionNotFound = fmt.Errorf("revision not found")
	ErrEmptyRevision    = fmt.Errorf("revision script has no statements")
	ErrNothingApplied   = fmt.Errorf("no applied revisions")
	ErrScaffoldExists   = fmt.Errorf("migration scaffold already exists")
	ErrNoScaffold       = fmt.Errorf("migrations directory not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
