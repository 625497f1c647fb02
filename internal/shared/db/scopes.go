package db

import (
	"gorm.io/gorm"
)

// NotDeleted is a GORM scope that filters out soft-deleted tickets.
// Soft-deleted rows are excluded from listings, queues, and statistics
// unless the caller explicitly asks for them.
//
// Example usage:
//
//	tx.Model(&TicketModel{}).Scopes(db.NotDeleted()).Count(&count)
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// NotDeletedWithAlias filters out soft-deleted rows when the query
// joins tables and the column needs qualification.
func NotDeletedWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias + ".deleted_at IS NULL")
	}
}
