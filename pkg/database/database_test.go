package database

import (
	"path/filepath"
	"testing"

	"kasir-pos/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kasir.db")

	db, err := Open(config.Database{Driver: "sqlite", Path: path})
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Close())
	assert.FileExists(t, path)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	db, err := Open(config.Database{Driver: "oracle"})

	assert.Nil(t, db)
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
