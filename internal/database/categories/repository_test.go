package categories

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/worldapptech/woosync/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_categories_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.WooCategory{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_Replace(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Replace([]entities.WooCategory{
		{WooID: 10, Name: "Shoes", Slug: "shoes"},
		{WooID: 11, Name: "Shirts", Slug: "shirts"},
	})
	require.NoError(t, err)

	// A later refresh replaces the whole set
	err = repo.Replace([]entities.WooCategory{
		{WooID: 11, Name: "Shirts", Slug: "shirts"},
		{WooID: 12, Name: "Accessories", Slug: "accessories"},
		{WooID: 13, Name: "Outerwear", Slug: "outerwear"},
	})
	require.NoError(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, found := repo.IDByName("Shoes")
	assert.False(t, found)
}

func TestRepository_Replace_Empty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Replace([]entities.WooCategory{
		{WooID: 10, Name: "Shoes"},
	})
	require.NoError(t, err)

	err = repo.Replace(nil)
	require.NoError(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepository_ListNames_Alphabetical(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Replace([]entities.WooCategory{
		{WooID: 10, Name: "Shoes"},
		{WooID: 11, Name: "Accessories"},
		{WooID: 12, Name: "Outerwear"},
	})
	require.NoError(t, err)

	names, err := repo.ListNames()

	require.NoError(t, err)
	assert.Equal(t, []string{"Accessories", "Outerwear", "Shoes"}, names)
}

func TestRepository_IDByName(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Replace([]entities.WooCategory{
		{WooID: 10, Name: "Shoes"},
	})
	require.NoError(t, err)

	id, found := repo.IDByName("Shoes")
	assert.True(t, found)
	assert.Equal(t, 10, id)

	// Lookup is case-insensitive
	id, found = repo.IDByName("sHoEs")
	assert.True(t, found)
	assert.Equal(t, 10, id)

	_, found = repo.IDByName("Hats")
	assert.False(t, found)
}
