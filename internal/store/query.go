package store

import "strings"

// QueryBuilder rewrites queries written with ? markers for the active dialect.
type QueryBuilder struct {
	dialect Dialect
}

func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build replaces each ? with the dialect's positional marker.
//
//	"SELECT id FROM dungeons WHERE seed = ? AND width = ?"
//	postgres: "SELECT id FROM dungeons WHERE seed = $1 AND width = $2"
func (qb *QueryBuilder) Build(query string) string {
	if qb.dialect.Placeholder(1) == "?" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(qb.dialect.Placeholder(position))
			position++
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// BuildInsert converts an INSERT and appends RETURNING column when the
// dialect cannot report the inserted id.
func (qb *QueryBuilder) BuildInsert(query, column string) string {
	q := qb.Build(query)
	if !qb.dialect.SupportsLastInsertID() {
		q += qb.dialect.ReturningClause(column)
	}
	return q
}
