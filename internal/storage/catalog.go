package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ListingRow is the browse read model of one active listing. It mirrors the
// engine's committed events; the engine state stays authoritative.
type ListingRow struct {
	ID         uint   `gorm:"primarykey"`
	Kind       string `gorm:"index:idx_listing,unique,priority:1"`
	Owner      string `gorm:"index:idx_listing,unique,priority:2"`
	ListingID  uint64 `gorm:"index:idx_listing,unique,priority:3"`
	CategoryID uint64 `gorm:"index"`
	CurrencyID uint32
	Price      int64
	Deadline   uint64
	ItemCount  int
}

// Catalog persists the browse read model in SQLite.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog opens (or creates) the catalog database at path.
func NewCatalog(path string) (*Catalog, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&ListingRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Catalog{db: db}, nil
}

// SaveListing inserts or updates the row for one listing.
func (c *Catalog) SaveListing(row *ListingRow) error {
	var existing ListingRow
	err := c.db.First(&existing, "kind = ? AND owner = ? AND listing_id = ?",
		row.Kind, row.Owner, row.ListingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.db.Create(row).Error
	}
	if err != nil {
		return err
	}
	row.ID = existing.ID
	return c.db.Save(row).Error
}

// UpdatePrice refreshes the standing price of a listing (auction bids).
func (c *Catalog) UpdatePrice(kind, owner string, listingID uint64, price int64) error {
	return c.db.Model(&ListingRow{}).
		Where("kind = ? AND owner = ? AND listing_id = ?", kind, owner, listingID).
		Update("price", price).Error
}

// DeleteListing removes the row when a listing leaves the market.
func (c *Catalog) DeleteListing(kind, owner string, listingID uint64) error {
	return c.db.Where("kind = ? AND owner = ? AND listing_id = ?", kind, owner, listingID).
		Delete(&ListingRow{}).Error
}

// ListByCategory returns all active listings in one category.
func (c *Catalog) ListByCategory(categoryID uint64) ([]ListingRow, error) {
	var rows []ListingRow
	err := c.db.Where("category_id = ?", categoryID).Order("listing_id").Find(&rows).Error
	return rows, err
}

// CountByCategory returns the number of active listings in one category.
func (c *Catalog) CountByCategory(categoryID uint64) (int64, error) {
	var count int64
	err := c.db.Model(&ListingRow{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// GetListing retrieves a single row, nil when absent.
func (c *Catalog) GetListing(kind, owner string, listingID uint64) (*ListingRow, error) {
	var row ListingRow
	err := c.db.First(&row, "kind = ? AND owner = ? AND listing_id = ?", kind, owner, listingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
