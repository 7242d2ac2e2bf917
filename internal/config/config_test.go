package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		Telnet: TelnetConfig{
			Host:         "127.0.0.1",
			Port:         4100,
			ReadTimeout:  10 * time.Minute,
			WriteTimeout: 30 * time.Second,
		},
		Fashionscape: FashionscapeConfig{
			RandomizerIntelligence: "low",
			OutfitsDir:             "outfits",
			CatalogDir:             "content/catalog",
			Profile:                "configs/player.yaml",
			EventBuffer:            64,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestTelnetAddr(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "127.0.0.1:4100", cfg.Telnet.Addr())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
telnet:
  port: 4101
  read_timeout: 1m
fashionscape:
  randomizer_intelligence: high
  exclude_base_models: true
  outfits_dir: /tmp/outfits
  scorer_script: scripts/scorer.lua
  event_buffer: 16
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, 4101, cfg.Telnet.Port)
	assert.Equal(t, time.Minute, cfg.Telnet.ReadTimeout)
	assert.Equal(t, "high", cfg.Fashionscape.RandomizerIntelligence)
	assert.True(t, cfg.Fashionscape.ExcludeBaseModels)
	assert.False(t, cfg.Fashionscape.ExcludeNonStandardItems)
	assert.Equal(t, "/tmp/outfits", cfg.Fashionscape.OutfitsDir)
	assert.Equal(t, "content/catalog", cfg.Fashionscape.CatalogDir)
	assert.Equal(t, "scripts/scorer.lua", cfg.Fashionscape.ScorerScript)
	assert.Equal(t, 16, cfg.Fashionscape.EventBuffer)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "low", cfg.Fashionscape.RandomizerIntelligence)
	assert.Equal(t, "outfits", cfg.Fashionscape.OutfitsDir)
	assert.Equal(t, 64, cfg.Fashionscape.EventBuffer)
	assert.Equal(t, "127.0.0.1:4100", cfg.Telnet.Addr())
	assert.Equal(t, 16, cfg.Telnet.MaxSessions)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FASHION_FASHIONSCAPE_RANDOMIZER_INTELLIGENCE", "moderate")
	t.Setenv("FASHION_LOGGING_LEVEL", "warn")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "moderate", cfg.Fashionscape.RandomizerIntelligence)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fashionscape:\n  event_buffer: 0\n"), 0644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fashionscape.event_buffer must be >= 1, got 0")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingOutputEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Output = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateTelnetPort(t *testing.T) {
	cfg := validConfig()
	cfg.Telnet.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateTelnetMaxSessions(t *testing.T) {
	cfg := validConfig()
	cfg.Telnet.MaxSessions = 0
	assert.NoError(t, cfg.Validate())
	cfg.Telnet.MaxSessions = -1
	assert.ErrorContains(t, cfg.Validate(), "telnet.max_sessions")
}

func TestValidateIntelligence(t *testing.T) {
	for _, level := range []string{"none", "low", "moderate", "HIGH"} {
		cfg := validConfig()
		cfg.Fashionscape.RandomizerIntelligence = level
		assert.NoError(t, cfg.Validate(), "intelligence %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Fashionscape.RandomizerIntelligence = "genius"
	assert.Error(t, cfg.Validate())
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	cfg.Fashionscape.OutfitsDir = ""
	cfg.Fashionscape.CatalogDir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "fashionscape.outfits_dir must not be empty")
	assert.Contains(t, err.Error(), "fashionscape.catalog_dir must not be empty")
}

// Property-based tests

func TestPropertyValidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.IntRange(1, 65535).Draw(t, "port")
		cfg := validConfig()
		cfg.Telnet.Port = port
		err := cfg.Validate()
		if err != nil {
			t.Fatalf("valid port %d rejected: %v", port, err)
		}
	})
}

func TestPropertyInvalidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65536, 100000),
		).Draw(t, "port")
		cfg := validConfig()
		cfg.Telnet.Port = port
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("invalid port %d accepted", port)
		}
	})
}

func TestPropertyEventBufferMustBePositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buffer := rapid.IntRange(-100, 100).Draw(t, "event_buffer")
		cfg := validConfig()
		cfg.Fashionscape.EventBuffer = buffer
		err := cfg.Validate()
		if (err == nil) != (buffer >= 1) {
			t.Fatalf("event_buffer=%d: got err=%v", buffer, err)
		}
	})
}
