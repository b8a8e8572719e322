package database

// Dialect identifies the SQL flavour behind a DB.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// IsUniqueViolation reports whether err was caused by a unique or primary key constraint.
func (d Dialect) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	switch d {
	case Postgres:
		return isPgUniqueViolation(err)
	case SQLite:
		return isSQLiteUniqueViolation(err)
	default:
		return false
	}
}
