// Package option composes reusable gorm query modifiers.
package option

import (
	"strings"
	"time"

	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

// Option mutates a gorm statement.
type Option interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type optionFunc func(stmt *gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

// ApplyPagination applies keyset pagination: rows strictly older than the
// cursor, fetching one extra row so callers can detect another page.
func ApplyPagination(page pagination.Pagination) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		pageSize := page.PageSize
		if pageSize <= 0 {
			pageSize = 10
		}
		if pageSize > 250 {
			pageSize = 250
		}

		if token := strings.TrimSpace(page.PageToken); token != "" {
			cursor, err := pagination.DecodeCursor(token)
			if err == nil && cursor != nil {
				if createdAt, parseErr := time.Parse(time.RFC3339, cursor.CreatedAt); parseErr == nil {
					stmt = stmt.Where(
						"(created_at < ?) OR (created_at = ? AND id < ?)",
						createdAt, createdAt, cursor.ID,
					)
				}
			}
		}

		return stmt.Limit(pageSize + 1)
	})
}
