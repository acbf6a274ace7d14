package orderrepo

import "gorm.io/gorm"

// Migrate creates or updates the order tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderDTO{}, &ProductDTO{}, &HistoryDTO{})
}
