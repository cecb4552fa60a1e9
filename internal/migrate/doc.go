// Package migrate implements the revision chain: parsing and rendering
// single-file SQL revision scripts, resolving their parent links into an
// ordered chain, and applying or reverting them against a SQLite database.
//
// Key Implementations:
//   - [Script] : One revision (metadata header plus up/down SQL sections)
//   - [Chain] : Scripts ordered base to head, validated for linear history
//   - [Engine] : Transactional upgrade/downgrade with a bookkeeping table
//   - [Init] / [NewRevision] : Scaffolding for the migrations directory
//
// Every applied revision is recorded in the bookkeeping table (default
// schema_revisions) with its applied_at timestamp. The current revision is
// the deepest applied revision on the chain; an empty table means base.
package migrate
