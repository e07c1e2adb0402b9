package mcpserver

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/langconf/internal/config"
	"github.com/erraggy/langconf/lcerrors"
	"github.com/erraggy/langconf/parser"
)

// testConfig mirrors the environment defaults of internal/config.
func testConfig() *config.Config {
	return &config.Config{
		GitHubAPIURL: "https://api.github.com",
		HTTPTimeout:  5 * time.Second,
		MaxRedirects: 5,
		MaxFileSize:  1 << 20,
		Indent:       "tab",
		MaxDepth:     32,
		LogLevel:     "info",
		LogFormat:    config.LogFormatJSON,
	}
}

// newTestToolset returns a toolset that may reach loopback test servers.
func newTestToolset(cfg *config.Config) *toolset {
	return newToolset(cfg, settings{AllowPrivateIPs: true, MaxInlineSize: 1 << 20}, parser.NopLogger{})
}

// clearMCPEnv isolates tests from LANGCONF_MCP_* variables in the ambient environment.
func clearMCPEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LANGCONF_MCP_ALLOW_PRIVATE_IPS", "LANGCONF_MCP_MAX_INLINE_SIZE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error returns empty string",
			err:  nil,
			want: "",
		},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("fetch error: /home/user/ext/base.json: cannot read file"),
			want: "fetch error: <path>: cannot read file",
		},
		{
			name: "preserves non-path content",
			err:  fmt.Errorf("parse error: line 5, column 3"),
			want: "parse error: line 5, column 3",
		},
		{
			name: "strips multiple paths",
			err:  fmt.Errorf("cycle: /tmp/a.json -> /tmp/b.json"),
			want: "cycle: <path> -> <path>",
		},
		{
			name: "keeps URLs",
			err:  fmt.Errorf("fetch error: https://example.com/base.json (HTTP 404 Not Found)"),
			want: "fetch error: https://example.com/base.json (HTTP 404 Not Found)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrResult(t *testing.T) {
	res := errResult(errors.New("cannot read /tmp/x.json"))
	require.NotNil(t, res)
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "cannot read <path>", text.Text)

	res = errResultf("max_depth must not be negative, got %d", -1)
	assert.True(t, res.IsError)
}

func TestLoadSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearMCPEnv(t)
		s, err := loadSettings()
		require.NoError(t, err)
		assert.False(t, s.AllowPrivateIPs)
		assert.Equal(t, int64(1048576), s.MaxInlineSize)
	})

	t.Run("environment", func(t *testing.T) {
		clearMCPEnv(t)
		t.Setenv("LANGCONF_MCP_ALLOW_PRIVATE_IPS", "true")
		t.Setenv("LANGCONF_MCP_MAX_INLINE_SIZE", "2048")
		s, err := loadSettings()
		require.NoError(t, err)
		assert.True(t, s.AllowPrivateIPs)
		assert.Equal(t, int64(2048), s.MaxInlineSize)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, value := range []string{"0", "-5", "lots"} {
			clearMCPEnv(t)
			t.Setenv("LANGCONF_MCP_MAX_INLINE_SIZE", value)
			_, err := loadSettings()
			require.Error(t, err, value)
			assert.True(t, errors.Is(err, lcerrors.ErrConfig), value)
		}
	})
}

func TestNewServer_InvalidSettings(t *testing.T) {
	clearMCPEnv(t)
	t.Setenv("LANGCONF_MCP_MAX_INLINE_SIZE", "0")
	_, err := newServer(testConfig(), nil)
	assert.Error(t, err)
}
