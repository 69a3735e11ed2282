package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("NODE_ENV", "")
	t.Setenv("CORS_ORIGIN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "soloDB", cfg.MongoDB)
	assert.False(t, cfg.Production)
	assert.Empty(t, cfg.CORSOrigin)
}

func TestLoadProductionFlag(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("CORS_ORIGIN", "https://solosphere.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Production)
	assert.Equal(t, "https://solosphere.example", cfg.CORSOrigin)
}
