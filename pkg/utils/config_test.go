package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearDatabaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "DB_HOST", "JWT_SECRET", "JWT_EXPIRY", "SQLITE_PATH"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearDatabaseEnv(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, DriverSQLite, config.Database.Driver)
	assert.Equal(t, "fallback.db", config.Database.SQLitePath)
	assert.Equal(t, 15*time.Minute, config.JWT.Expiry)
	assert.True(t, config.JWT.Ephemeral)
	assert.Len(t, config.JWT.Secret, 64)
	assert.Equal(t, []string{"*"}, config.CORS.AllowedOrigins)
}

func TestLoadConfig_Drivers(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantDriver string
		wantPath   string
	}{
		{
			name:       "postgres url",
			env:        map[string]string{"DATABASE_URL": "postgres://u:p@localhost:5432/restaurantdb"},
			wantDriver: DriverPostgres,
			wantPath:   "fallback.db",
		},
		{
			name:       "discrete host",
			env:        map[string]string{"DB_HOST": "db"},
			wantDriver: DriverPostgres,
			wantPath:   "fallback.db",
		},
		{
			name:       "sqlite url",
			env:        map[string]string{"DATABASE_URL": "sqlite:///menu.db"},
			wantDriver: DriverSQLite,
			wantPath:   "menu.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearDatabaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			config, err := LoadConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, config.Database.Driver)
			assert.Equal(t, tt.wantPath, config.Database.SQLitePath)
		})
	}
}

func TestLoadConfig_ExplicitSecret(t *testing.T) {
	clearDatabaseEnv(t)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRY", "1h")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.JWT.Secret)
	assert.False(t, config.JWT.Ephemeral)
	assert.Equal(t, time.Hour, config.JWT.Expiry)
}
