package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/trek/internal/schema"
)

// ArtistsSchema returns the DDL for the artists table.
func ArtistsSchema() string {
	return schema.CreateTableIfNotExists("artists",
		schema.Col("id", schema.Text).PrimaryKey(),
		schema.Col("name", schema.Text).NotNull(),
		schema.Col("genre", schema.Text),
		schema.Col("age", schema.Integer),
		schema.Col("hometown", schema.Text),
		schema.Col("created_at", schema.Timestamp).NotNull(),
		schema.Col("updated_at", schema.Timestamp).NotNull(),
		schema.Col("deleted_at", schema.Timestamp),
	)
}

// SongsSchema returns the DDL for the songs table. The walkthrough creates
// this table through a revision script rather than Bootstrap.
func SongsSchema() string {
	return schema.CreateTableIfNotExists("songs",
		schema.Col("id", schema.Text).PrimaryKey(),
		schema.Col("artist_id", schema.Text).NotNull().References("artists", "id"),
		schema.Col("name", schema.Text).NotNull(),
		schema.Col("length", schema.Integer).NotNull(),
		schema.Col("created_at", schema.Timestamp).NotNull(),
		schema.Col("updated_at", schema.Timestamp).NotNull(),
		schema.Col("deleted_at", schema.Timestamp),
	)
}

// Bootstrap creates the base model tables, the equivalent of an ORM's
// create_all. Only the artists table is created here; the songs table is the
// walkthrough's first revision.
func Bootstrap(db *sql.DB) error {
	if _, err := db.Exec(ArtistsSchema()); err != nil {
		return fmt.Errorf("failed to create artists table: %w", err)
	}
	return nil
}

// nullable converts an empty string to nil for insertion into a nullable
// column.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
