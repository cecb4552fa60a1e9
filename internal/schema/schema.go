// Package schema renders SQLite DDL from composable table and column
// definitions. It backs 'trek db bootstrap' and keeps revision SQL in the
// walkthrough consistent with the in-code model schema.
package schema

import (
	"fmt"
	"strings"
)

// ColumnType enumerates the SQLite column affinities used by the models.
type ColumnType string

const (
	Text      ColumnType = "TEXT"
	Integer   ColumnType = "INTEGER"
	Real      ColumnType = "REAL"
	Timestamp ColumnType = "TIMESTAMP"
)

// Column describes a single column in a table definition.
type Column struct {
	name     string
	typ      ColumnType
	primary  bool
	notNull  bool
	def      string
	refTable string
	refCol   string
}

// Col starts a column definition with the given name and type.
func Col(name string, typ ColumnType) Column {
	return Column{name: name, typ: typ}
}

// PrimaryKey marks the column as the table's primary key.
func (c Column) PrimaryKey() Column {
	c.primary = true
	return c
}

// NotNull adds a NOT NULL constraint.
func (c Column) NotNull() Column {
	c.notNull = true
	return c
}

// Default sets a raw SQL default expression.
func (c Column) Default(expr string) Column {
	c.def = expr
	return c
}

// References adds a foreign key reference to the given table and column.
func (c Column) References(table, column string) Column {
	c.refTable = table
	c.refCol = column
	return c
}

// render writes the column clause for a CREATE TABLE or ADD COLUMN statement.
func (c Column) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", c.name, c.typ)
	if c.primary {
		b.WriteString(" PRIMARY KEY")
	}
	if c.notNull {
		b.WriteString(" NOT NULL")
	}
	if c.def != "" {
		fmt.Fprintf(&b, " DEFAULT %s", c.def)
	}
	if c.refTable != "" {
		fmt.Fprintf(&b, " REFERENCES %s(%s)", c.refTable, c.refCol)
	}
	return b.String()
}

// CreateTable renders a CREATE TABLE statement for the given columns.
func CreateTable(name string, cols ...Column) string {
	return createTable(name, false, cols)
}

// CreateTableIfNotExists renders a CREATE TABLE IF NOT EXISTS statement.
func CreateTableIfNotExists(name string, cols ...Column) string {
	return createTable(name, true, cols)
}

func createTable(name string, ifNotExists bool, cols []Column) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	fmt.Fprintf(&b, "%s (\n", name)
	for i, col := range cols {
		fmt.Fprintf(&b, "\t%s", col.render())
		if i < len(cols)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// DropTable renders a DROP TABLE statement.
func DropTable(name string) string {
	return fmt.Sprintf("DROP TABLE %s", name)
}

// AddColumn renders an ALTER TABLE ... ADD COLUMN statement.
func AddColumn(table string, col Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, col.render())
}

// DropColumn renders an ALTER TABLE ... DROP COLUMN statement.
func DropColumn(table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, column)
}

// RenameTable renders an ALTER TABLE ... RENAME TO statement.
func RenameTable(oldName, newName string) string {
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", oldName, newName)
}
