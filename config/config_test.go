package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	inTempDir(t)
	t.Setenv("JWT_SECRET", "s3cret")

	require.NoError(t, LoadConfig())
	assert.Equal(t, "5000", AppConfig.AppPort)
	assert.Equal(t, 168*time.Hour, AppConfig.TokenTTL)
	assert.Equal(t, 3*time.Minute, AppConfig.CodeTTL)
	assert.Equal(t, "redis", AppConfig.CodeStore)
	assert.Equal(t, "portfolio-website", AppConfig.UploadFolder)
	assert.Equal(t, int64(100), AppConfig.MaxUploadMB)
	assert.Contains(t, AppConfig.CORSAllowedOrigins, "http://localhost:5173")
	assert.False(t, IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	inTempDir(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CODE_TTL", "90s")
	t.Setenv("CODE_STORE", "memory")
	t.Setenv("ENV", "production")
	t.Setenv("SMTP_PORT", "2525")

	require.NoError(t, LoadConfig())
	assert.Equal(t, 90*time.Second, AppConfig.CodeTTL)
	assert.Equal(t, "memory", AppConfig.CodeStore)
	assert.Equal(t, 2525, AppConfig.SMTPPort)
	assert.True(t, IsProduction())
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	inTempDir(t)
	t.Setenv("JWT_SECRET", "s3cret")
	require.NoError(t, os.WriteFile("config.yaml", []byte("STORAGE_PROVIDER: cloudinary\nUPLOAD_FOLDER: uploads\n"), 0o600))

	require.NoError(t, LoadConfig())
	assert.Equal(t, "cloudinary", AppConfig.StorageProvider)
	assert.Equal(t, "uploads", AppConfig.UploadFolder)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	inTempDir(t)
	t.Setenv("JWT_SECRET", "")
	assert.ErrorContains(t, LoadConfig(), "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	valid := Config{
		JWTSecret:          "x",
		CodeStore:          "redis",
		StorageProvider:    "firebase",
		CodeTTL:            time.Minute,
		TokenTTL:           time.Hour,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"code store":   func(c *Config) { c.CodeStore = "disk" },
		"provider":     func(c *Config) { c.StorageProvider = "s3" },
		"code ttl":     func(c *Config) { c.CodeTTL = 0 },
		"token ttl":    func(c *Config) { c.TokenTTL = -time.Second },
		"cors origins": func(c *Config) { c.CORSAllowedOrigins = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
