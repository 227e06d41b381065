package cssveil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"index.html", FormatHTML},
		{"pages/about.htm", FormatHTML},
		{"styles/site.css", FormatCSS},
		{"styles/site.scss", FormatCSS},
		{"styles/site.sass", FormatCSS},
		{"js/app.js", FormatJS},
		{"UPPER.HTML", FormatHTML},
		{"img/logo.png", FormatUnknown},
		{"README", FormatUnknown},
		{"archive.tar.gz", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForPath(tt.path))
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeContext, m)

	m, err = ParseMode("context")
	require.NoError(t, err)
	assert.Equal(t, ModeContext, m)

	m, err = ParseMode("naive")
	require.NoError(t, err)
	assert.Equal(t, ModeNaive, m)

	_, err = ParseMode("aggressive")
	require.Error(t, err)
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	assert.Equal(t, "v", cfg.Prefix)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 3, cfg.MinLength)
	assert.Equal(t, DefaultWhitelist, cfg.Whitelist)

	custom := Config{Prefix: "x", Width: 6, MinLength: 2, Whitelist: []string{"only-this"}}.WithDefaults()
	assert.Equal(t, "x", custom.Prefix)
	assert.Equal(t, 6, custom.Width)
	assert.Equal(t, 2, custom.MinLength)
	assert.Equal(t, []string{"only-this"}, custom.Whitelist)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults pass", cfg: Config{}.WithDefaults()},
		{name: "empty prefix", cfg: Config{Width: 8}, wantErr: "must not be empty"},
		{name: "digit prefix", cfg: Config{Prefix: "9a", Width: 8}, wantErr: "must start with a letter"},
		{name: "invalid character", cfg: Config{Prefix: "a.b", Width: 8}, wantErr: "invalid character"},
		{name: "width too small", cfg: Config{Prefix: "v", Width: 3}, wantErr: "out of range"},
		{name: "width too large", cfg: Config{Prefix: "v", Width: 33}, wantErr: "out of range"},
		{name: "hyphenated prefix", cfg: Config{Prefix: "app-", Width: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestResultErrors(t *testing.T) {
	r := Result{Issues: []FileIssue{
		{Severity: SeverityWarning},
		{Severity: SeverityError},
		{Severity: SeverityError},
	}}
	assert.Equal(t, 2, r.Errors())
}
