package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func clearEnvVars() {
	os.Unsetenv("AIPR_WORDS_PER_MINUTE")
	os.Unsetenv("AIPR_FOOTER")
	os.Unsetenv("AIPR_FOOTER_PATH")
	os.Unsetenv("AIPR_HEADER_TEMPLATE")
	os.Unsetenv("AIPR_LINK_TEMPLATE")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid default",
			config:  *Default(),
			wantErr: false,
		},
		{
			name:    "zero words per minute",
			config:  Config{WordsPerMinute: 0},
			wantErr: true,
			errMsg:  "words_per_minute must be positive",
		},
		{
			name:    "negative words per minute",
			config:  Config{WordsPerMinute: -5},
			wantErr: true,
			errMsg:  "words_per_minute must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_FooterEnabled(t *testing.T) {
	assert.True(t, Default().FooterEnabled())
	assert.True(t, (&Config{Footer: boolPtr(true)}).FooterEnabled())
	assert.False(t, (&Config{Footer: boolPtr(false)}).FooterEnabled())
}

func TestConfig_Clone(t *testing.T) {
	original := &Config{
		WordsPerMinute: 150,
		Footer:         boolPtr(true),
		FooterPath:     "footer.html",
	}

	clone := original.Clone()
	*clone.Footer = false
	clone.WordsPerMinute = 90

	// The original is untouched.
	assert.True(t, *original.Footer)
	assert.Equal(t, 150, original.WordsPerMinute)
	assert.False(t, *clone.Footer)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	t.Run("loads all env vars", func(t *testing.T) {
		os.Setenv("AIPR_WORDS_PER_MINUTE", "120")
		os.Setenv("AIPR_FOOTER", "false")
		os.Setenv("AIPR_FOOTER_PATH", "assets/footer.html")
		os.Setenv("AIPR_HEADER_TEMPLATE", "assets/header.hbs")
		os.Setenv("AIPR_LINK_TEMPLATE", "assets/link.hbs")

		cfg := Default()
		cfg.LoadFromEnv()

		assert.Equal(t, 120, cfg.WordsPerMinute)
		require.NotNil(t, cfg.Footer)
		assert.False(t, *cfg.Footer)
		assert.Equal(t, "assets/footer.html", cfg.FooterPath)
		assert.Equal(t, "assets/header.hbs", cfg.HeaderTemplate)
		assert.Equal(t, "assets/link.hbs", cfg.LinkTemplate)
	})

	t.Run("unparseable values are ignored", func(t *testing.T) {
		clearEnvVars()
		os.Setenv("AIPR_WORDS_PER_MINUTE", "fast")
		os.Setenv("AIPR_FOOTER", "maybe")

		cfg := Default()
		cfg.LoadFromEnv()

		assert.Equal(t, 200, cfg.WordsPerMinute)
		assert.Nil(t, cfg.Footer)
	})

	t.Run("non-positive speed is ignored", func(t *testing.T) {
		clearEnvVars()
		os.Setenv("AIPR_WORDS_PER_MINUTE", "0")

		cfg := Default()
		cfg.LoadFromEnv()

		assert.Equal(t, 200, cfg.WordsPerMinute)
	})

	t.Run("unset vars keep existing values", func(t *testing.T) {
		clearEnvVars()

		cfg := &Config{WordsPerMinute: 90, FooterPath: "keep.html"}
		cfg.LoadFromEnv()

		assert.Equal(t, 90, cfg.WordsPerMinute)
		assert.Equal(t, "keep.html", cfg.FooterPath)
	})
}

func TestConfig_FromTable(t *testing.T) {
	tests := []struct {
		name    string
		table   map[string]interface{}
		want    Config
		wantErr string
	}{
		{
			name:  "nil table is a no-op",
			table: nil,
			want:  *Default(),
		},
		{
			name: "all keys",
			table: map[string]interface{}{
				"words_per_minute": float64(100),
				"footer":           false,
				"footer_path":      "assets/footer.html",
				"header_template":  "assets/header.hbs",
				"link_template":    "assets/link.hbs",
			},
			want: Config{
				WordsPerMinute: 100,
				Footer:         boolPtr(false),
				FooterPath:     "assets/footer.html",
				HeaderTemplate: "assets/header.hbs",
				LinkTemplate:   "assets/link.hbs",
			},
		},
		{
			name:  "integer accepted",
			table: map[string]interface{}{"words_per_minute": 150},
			want:  Config{WordsPerMinute: 150},
		},
		{
			name:    "fractional speed rejected",
			table:   map[string]interface{}{"words_per_minute": 12.5},
			wantErr: "words_per_minute",
		},
		{
			name:    "non-numeric speed rejected",
			table:   map[string]interface{}{"words_per_minute": "fast"},
			wantErr: "words_per_minute",
		},
		{
			name:    "non-boolean footer rejected",
			table:   map[string]interface{}{"footer": "off"},
			wantErr: "footer: expected a boolean",
		},
		{
			name:    "non-string path rejected",
			table:   map[string]interface{}{"footer_path": 7.0},
			wantErr: "footer_path: expected a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.FromTable(tt.table)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &tt.want, cfg)
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", origXDG)

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		os.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		assert.Equal(t, filepath.Join("/tmp/xdg", "mdbook-aipr", "config.yml"), DefaultConfigPath())
	})

	t.Run("falls back to home config dir", func(t *testing.T) {
		os.Unsetenv("XDG_CONFIG_HOME")

		home, err := os.UserHomeDir()
		require.NoError(t, err)

		path := DefaultConfigPath()
		assert.True(t, strings.HasPrefix(path, home))
		assert.Contains(t, path, "mdbook-aipr")
		assert.Equal(t, ".yml", filepath.Ext(path))
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	original := Config{
		WordsPerMinute: 150,
		Footer:         boolPtr(false),
		FooterPath:     "assets/footer.html",
		HeaderTemplate: "assets/header.hbs",
		LinkTemplate:   "assets/link.hbs",
	}

	// Save
	err := original.Save(configPath)
	require.NoError(t, err)

	// Load
	loaded, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, original.WordsPerMinute, loaded.WordsPerMinute)
	require.NotNil(t, loaded.Footer)
	assert.False(t, *loaded.Footer)
	assert.Equal(t, original.FooterPath, loaded.FooterPath)
	assert.Equal(t, original.HeaderTemplate, loaded.HeaderTemplate)
	assert.Equal(t, original.LinkTemplate, loaded.LinkTemplate)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
}

func TestLoad_FillsDefaultSpeed(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("footer: false\n"), 0600))

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 200, loaded.WordsPerMinute)
	require.NotNil(t, loaded.Footer)
	assert.False(t, *loaded.Footer)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	os.Setenv("AIPR_WORDS_PER_MINUTE", "120")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.WordsPerMinute)
	assert.True(t, cfg.FooterEnabled())
}
