package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cgmd/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		LibreView: structures.LibreViewConfig{
			ApiUrl:  "https://api-eu.libreview.io",
			Timeout: 30 * time.Second,
			Product: "llu.android",
			Version: "4.12.0",
		},
		Poller: structures.PollerConfig{
			Interval: 60 * time.Second,
		},
		Preferences: structures.PreferencesConfig{
			FilePath: "/tmp/preferences.yaml",
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 18090,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidApiUrl(t *testing.T) {
	c := validConfig()
	c.LibreView.ApiUrl = "not-a-url"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingProduct(t *testing.T) {
	c := validConfig()
	c.LibreView.Product = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPollInterval(t *testing.T) {
	c := validConfig()
	c.Poller.Interval = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyPreferencesPath(t *testing.T) {
	c := validConfig()
	c.Preferences.FilePath = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
