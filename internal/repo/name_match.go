package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/votabienperu/comparador/internal/search"
)

// matchPersonName joins persons on table.person_id and keeps rows whose
// folded name contains query. Rows are ordered by name relevance before
// tiebreak so a LIMIT keeps the best matches: whole-name prefix, then word
// prefix, then any substring, shorter names first within each band.
func matchPersonName(table, query, tiebreak string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		order := clause.Expr{
			SQL: `CASE WHEN persons.search_name LIKE ? ESCAPE '\' THEN 0 ` +
				`WHEN persons.search_name LIKE ? ESCAPE '\' THEN 1 ELSE 2 END, ` +
				`LENGTH(persons.search_name), ` + tiebreak,
			Vars: []any{search.PrefixPattern(query), search.WordPrefixPattern(query)},
		}
		return db.
			Joins("JOIN persons ON persons.id = "+table+".person_id").
			Where(`persons.search_name LIKE ? ESCAPE '\'`, search.LikePattern(query)).
			Order(clause.OrderBy{Expression: order})
	}
}
