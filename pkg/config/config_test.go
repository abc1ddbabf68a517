package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.False(t, cfg.Ads.Enabled)
	assert.Equal(t, 500, cfg.Ads.MinContentLength)
	assert.Equal(t, 2*time.Second, cfg.Ads.LoadDelay)
	assert.Equal(t, 2*time.Minute, cfg.Announcements.CacheTTL)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
	assert.Equal(t, 1000, cfg.Exports.MaxRows)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ENABLE_ADS", true)
	v.Set("ADS_CLIENT_ID", "ca-pub-123")
	v.Set("ADS_MIN_CONTENT_LENGTH", -4)
	v.Set("ADS_LOAD_DELAY", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := fromViper(v)

	assert.True(t, cfg.Ads.Enabled)
	assert.Equal(t, "ca-pub-123", cfg.Ads.ClientID)
	assert.Equal(t, 500, cfg.Ads.MinContentLength)
	assert.Equal(t, 2*time.Second, cfg.Ads.LoadDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, 3*time.Second, parseDuration("3s", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
}
