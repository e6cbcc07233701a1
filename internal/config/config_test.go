package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("RECENT_LOGIN_WINDOW", "")
	t.Setenv("EMAILJS_SERVICE_ID", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()

	assert.False(t, cfg.UsesMemoryStore())

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Minute, cfg.RecentLoginWindow)
	assert.False(t, cfg.EmailJS.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CHECK_EMAIL_DOMAIN", "yes")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("NOTIFY_QUEUE_SIZE", "not-a-number")
	t.Setenv("EMAILJS_SERVICE_ID", "svc")
	t.Setenv("EMAILJS_TEMPLATE_ID_EVENT", "tpl_accepted")
	t.Setenv("EMAILJS_EVENT_UPDATED_TEMPLATE_ID", "tpl_updated")
	t.Setenv("EMAILJS_PUBLIC_KEY", "pub")
	t.Setenv("STORE_DRIVER", "Memory")

	cfg := Load()

	assert.True(t, cfg.UsesMemoryStore())

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.CheckEmailDomain)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 100, cfg.NotifyQueueSize)
	assert.True(t, cfg.EmailJS.Enabled())
}
