package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/jiseti/jiseti-api/internal/config"
	"github.com/jiseti/jiseti-api/internal/identity"
	"github.com/jiseti/jiseti-api/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Record{},
		&models.Notification{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		TokenExpiry: 24 * time.Hour,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username, email, role string) (*models.User, identity.AuthContext) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Password:  string(hash),
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)

	return user, identity.AuthContext{UserID: user.ID, Role: user.Role}
}

func createTestRecord(t *testing.T, db *gorm.DB, owner *models.User, status string) *models.Record {
	t.Helper()

	lat, lon := -1.2921, 36.8219
	record := &models.Record{
		ID:          uuid.New(),
		Type:        models.TypeRedFlag,
		Title:       "corruption",
		Description: "Officials diverted funds meant for road repairs",
		Status:      status,
		Latitude:    &lat,
		Longitude:   &lon,
		Images:      marshalImages(nil),
		UserID:      owner.ID,
	}
	require.NoError(t, db.Create(record).Error)
	return record
}
