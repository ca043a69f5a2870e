package repository

import (
	"ripple/internal/database"

	"gorm.io/gorm"
)

// readDB routes read queries to the replica when one is configured.
func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}
