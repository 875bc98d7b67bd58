// internal/services/testdb_test.go
package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dzboutik/dzboutik-backend/internal/models"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

func defaultPaginationParams() utils.PaginationParams {
	return utils.PaginationParams{
		Page:  1,
		Limit: 20,
		Sort:  "created_at",
		Order: "desc",
	}
}

var testDBSeq int64

// newTestDB opens a fresh in-memory database per test with the full schema
// migrated. UUIDs come from the client-side BeforeCreate hook.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps the schema alive across the pooled
	// connections while isolating each test from the others.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Variant{},
		&models.Pack{},
		&models.PackProduct{},
		&models.Order{},
		&models.OrderProduct{},
		&models.OrderPack{},
		&models.OrderPackProduct{},
		&models.PromoCode{},
		&models.Wilaya{},
		&models.ContactMessage{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// The schema carries no database-side column defaults sqlite cannot parse;
// migration succeeds and inserts get their IDs from the BeforeCreate hook.
func TestMigratedSchemaAssignsIDs(t *testing.T) {
	db := newTestDB(t)

	product := &models.Product{Name: "Sample", Price: 100}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ID == uuid.Nil {
		t.Fatal("expected a client-side generated ID")
	}
}
