package dbx

import (
	"context"
	"database/sql"
	"strings"
)

// RebindNumbered rewrites PostgreSQL-style $N placeholders into SQLite's ?N
// form. Placeholders inside single-quoted literals are left alone.
func RebindNumbered(query string) string {
	if !strings.Contains(query, "$") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))

	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
		case c == '$' && !inQuote && i+1 < len(query) && isDigit(query[i+1]):
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

type numberedDBTX struct {
	db DBTX
}

// Rebind wraps db so every statement is passed through RebindNumbered first.
// Repositories keep a single SQL text for both backends this way.
func Rebind(db DBTX) DBTX {
	if r, ok := db.(*numberedDBTX); ok {
		return r
	}
	return &numberedDBTX{db: db}
}

func (r *numberedDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, RebindNumbered(query), args...)
}

func (r *numberedDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, RebindNumbered(query), args...)
}

func (r *numberedDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, RebindNumbered(query), args...)
}
