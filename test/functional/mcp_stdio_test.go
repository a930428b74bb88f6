package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// stdioSession wraps an MCP client session talking to the built server
// binary over stdio, against a throwaway repository root.
type stdioSession struct {
	session *sdkmcp.ClientSession
	cancel  context.CancelFunc
}

func newStdioSession(t *testing.T) *stdioSession {
	t.Helper()
	return newStdioSessionWithEnv(t, nil)
}

func newStdioSessionWithEnv(t *testing.T, extraEnv []string) *stdioSession {
	t.Helper()

	// Find the binary
	binaryPath := "./bin/pipetrack"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/pipetrack"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Build with: go build -o bin/pipetrack ./cmd/server")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"PIPETRACK_TRANSPORT_MODE=stdio",
		"PIPETRACK_REPO="+t.TempDir(),
	)
	if len(extraEnv) > 0 {
		cmd.Env = append(cmd.Env, extraEnv...)
	}

	transport := &sdkmcp.CommandTransport{Command: cmd}

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})

	return &stdioSession{session: session, cancel: cancel}
}

func (s *stdioSession) callTool(t *testing.T, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)

	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(textContent.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil
}

func TestStdioFunctional_ShotPipeline(t *testing.T) {
	s := newStdioSession(t)

	create := s.callTool(t, "create_project", map[string]any{"name": "Maiden Voyage"})
	var proj struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(create, &proj))
	require.Equal(t, "MAIDEN_VOYAGE", proj.Name)

	_ = s.callTool(t, "create_sequence", map[string]any{
		"project": "MAIDEN_VOYAGE", "name": "SEQ A",
	})

	shotResp := s.callTool(t, "create_shot", map[string]any{
		"project": "MAIDEN_VOYAGE", "sequence": "SEQ_A", "number": "1",
	})
	var sh struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(shotResp, &sh))
	require.Equal(t, "SH001", sh.Code)

	versionResp := s.callTool(t, "create_shot_version", map[string]any{
		"project":    "MAIDEN_VOYAGE",
		"sequence":   "SEQ_A",
		"shot_code":  "SH001",
		"type":       "Animation",
		"created_by": "adm",
		"extension":  ".ma",
	})
	var v struct {
		Filename string `json:"filename"`
		Number   int    `json:"version_number"`
	}
	require.NoError(t, json.Unmarshal(versionResp, &v))
	require.Equal(t, 1, v.Number)
	require.Equal(t, "SH001_MAIN_ANIM_v001_adm.ma", v.Filename)

	listResp := s.callTool(t, "list_shot_versions", map[string]any{
		"project": "MAIDEN_VOYAGE", "sequence": "SEQ_A", "shot_code": "SH001",
	})
	require.Contains(t, string(listResp), v.Filename)
}

func TestStdioFunctional_MCPProtocolCompliance(t *testing.T) {
	s := newStdioSession(t)

	initResult := s.session.InitializeResult()
	require.NotNil(t, initResult)
	require.NotNil(t, initResult.ServerInfo)
	require.Equal(t, "pipetrack", initResult.ServerInfo.Name)
	require.Equal(t, "0.1.0", initResult.ServerInfo.Version)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := s.session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Greater(t, len(tools.Tools), 15, "should have the full tool surface")

	toolMap := make(map[string]*sdkmcp.Tool)
	for _, tool := range tools.Tools {
		toolMap[tool.Name] = tool
	}

	require.Contains(t, toolMap, "create_project")
	require.Contains(t, toolMap, "create_shot_version")
	require.Contains(t, toolMap, "reconcile_project")
	require.NotEmpty(t, toolMap["create_project"].Description)
}

func TestStdioFunctional_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "pipetrack.log")
	s := newStdioSessionWithEnv(t, []string{
		"PIPETRACK_LOG_PATH=" + logPath,
		"PIPETRACK_LOG_LEVEL=debug",
	})

	_ = s.callTool(t, "list_projects", nil)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		text := string(data)
		return strings.Contains(text, `msg="mcp traffic"`) &&
			strings.Contains(text, "stage=request") &&
			strings.Contains(text, "stage=response")
	}, 5*time.Second, 100*time.Millisecond)
}
