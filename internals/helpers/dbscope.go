package helper

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockUpdate menambahkan SELECT ... FOR UPDATE pada dialek yang
// mendukungnya. SQLite memakai single-writer lock dan parsernya
// tidak mengenal klausa FOR UPDATE.
func LockUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
