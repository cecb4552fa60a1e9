// Package models defines the demo domain entities for the artists database
// the walkthrough migrates.
//
//   - [Artist] : A recording artist (name, genre, age, hometown)
//   - [Song] : A song belonging to an artist (name, length in seconds)
//
// Both entities implement the Model interface providing ID generation hooks,
// timestamps, validation, and soft delete support. The Repository[T]
// interface defines standard CRUD operations for database access.
package models
