package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/langconf/internal/testutil"
	"github.com/erraggy/langconf/parser"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T, allowPrivateIPs bool) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "langconf-test", Version: "test"},
		nil,
	)
	ts := newToolset(testConfig(), settings{AllowPrivateIPs: allowPrivateIPs, MaxInlineSize: 1 << 20}, parser.NopLogger{})
	ts.register(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	// Start server in background; it blocks until the connection closes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t, false)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Tools, 2)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
		assert.NotNil(t, tool.InputSchema, "tool %q has no input schema", tool.Name)
	}
	assert.True(t, slices.Contains(names, "expand"))
	assert.True(t, slices.Contains(names, "check_structure"))
}

func TestIntegration_CallTool_ExpandURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ext/base.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testBaseJSON))
	})
	mux.HandleFunc("/ext/child.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testChildJSON))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	session := startTestSession(t, true)
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "expand",
		Arguments: map[string]any{
			"document": map[string]any{"url": srv.URL + "/ext/child.json"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.IsError, "expand should succeed: %v", result.Content)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, testExpanded, structured["document"])
	assert.Equal(t, []any{srv.URL + "/ext/child.json", srv.URL + "/ext/base.json"}, structured["chain"])

	conflicts, ok := structured["conflicts"].([]any)
	require.True(t, ok, "conflicts should be an array")
	require.Len(t, conflicts, 1)
	conflict, ok := conflicts[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "wordPattern", conflict["key"])
	assert.Equal(t, "warning", conflict["severity"])
}

func TestIntegration_CallTool_ExpandBlocksPrivateURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	session := startTestSession(t, false)
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "expand",
		Arguments: map[string]any{
			"document": map[string]any{
				"content": `{"extends": "` + srv.URL + `/base.json"}`,
			},
		},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "blocked request to private/loopback IP")
}

func TestIntegration_CallTool_CheckStructure(t *testing.T) {
	session := startTestSession(t, false)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "check_structure",
		Arguments: map[string]any{
			"document": map[string]any{"content": testutil.CompleteConfig},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, true, structured["valid"])
	assert.Equal(t, float64(0), structured["issue_count"])
}

func TestIntegration_CallTool_Error_MissingDocument(t *testing.T) {
	session := startTestSession(t, false)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "expand",
		Arguments: map[string]any{
			"document": map[string]any{},
		},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError, "expand should return IsError when no document source is provided")
}

// unmarshalStructured extracts the structured output from a CallToolResult.
// It first checks StructuredContent, then falls back to parsing the first TextContent.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
