package settings

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
	dbPath := "./test_settings_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Setting{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_SetSetting_New(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.SetSetting(entities.SettingKeyWooBaseURL, "https://shop.example.com")
	require.NoError(t, err)

	setting, err := repo.GetSetting(entities.SettingKeyWooBaseURL)
	require.NoError(t, err)
	assert.Equal(t, entities.SettingKeyWooBaseURL, setting.Key)
	assert.Equal(t, "https://shop.example.com", setting.Value)
}

func TestRepository_SetSetting_Update(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Set initial value
	err := repo.SetSetting(entities.SettingKeySyncBatchSize, "10")
	require.NoError(t, err)

	// Update value
	err = repo.SetSetting(entities.SettingKeySyncBatchSize, "25")
	require.NoError(t, err)

	setting, err := repo.GetSetting(entities.SettingKeySyncBatchSize)
	require.NoError(t, err)
	assert.Equal(t, "25", setting.Value)
}

func TestRepository_GetSetting_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetSetting("nonexistent")

	assert.Error(t, err)
}

func TestRepository_DeleteSetting(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.SetSetting(entities.SettingKeyOpenAIAPIKey, "sk-test")
	require.NoError(t, err)

	err = repo.DeleteSetting(entities.SettingKeyOpenAIAPIKey)
	require.NoError(t, err)

	_, err = repo.GetSetting(entities.SettingKeyOpenAIAPIKey)
	assert.Error(t, err)
}

func TestRepository_DeleteSetting_NonExistent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Should not error even if key doesn't exist
	err := repo.DeleteSetting("nonexistent")
	assert.NoError(t, err)
}

func TestRepository_SetSettings_CreatesAndUpdates(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.SetSetting(entities.SettingKeyWooSyncLastStatus, "submitted")
	require.NoError(t, err)

	err = repo.SetSettings(map[string]string{
		entities.SettingKeyWooSyncLastStatus:  "failed",
		entities.SettingKeyWooSyncLastMessage: "storefront unreachable",
	})
	require.NoError(t, err)

	status, err := repo.GetSetting(entities.SettingKeyWooSyncLastStatus)
	require.NoError(t, err)
	assert.Equal(t, "failed", status.Value)

	message, err := repo.GetSetting(entities.SettingKeyWooSyncLastMessage)
	require.NoError(t, err)
	assert.Equal(t, "storefront unreachable", message.Value)
}

func TestRepository_DeleteSettings_OnlyListedKeys(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.SetSetting(entities.SettingKeyWooBaseURL, "https://shop.example.com"))
	require.NoError(t, repo.SetSetting(entities.SettingKeyWooConsumerKey, "ck_test"))
	require.NoError(t, repo.SetSetting(entities.SettingKeyWooSyncLastStatus, "submitted"))

	err := repo.DeleteSettings(entities.SettingKeyWooBaseURL, entities.SettingKeyWooConsumerKey, "nonexistent")
	require.NoError(t, err)

	_, err = repo.GetSetting(entities.SettingKeyWooBaseURL)
	assert.Error(t, err)
	_, err = repo.GetSetting(entities.SettingKeyWooConsumerKey)
	assert.Error(t, err)

	// Unlisted keys survive
	status, err := repo.GetSetting(entities.SettingKeyWooSyncLastStatus)
	require.NoError(t, err)
	assert.Equal(t, "submitted", status.Value)
}
