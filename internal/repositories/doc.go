// Package repositories implements SQLite persistence for the demo domain
// entities.
//
// Each repository handles CRUD operations in the usual shape: UUID primary
// keys assigned on Create, soft deletes via deleted_at timestamps, and
// deleted records excluded from queries by default.
//
// Key Implementations:
//   - [ArtistRepository] : Artist persistence with genre/hometown filters
//   - [SongRepository] : Song persistence with artist-scoped listing
//
// [Bootstrap] creates the base model tables the way an ORM's create_all
// would; later schema changes belong to revision scripts, not this package.
package repositories
