package version

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kitforge/create-express/internal/exec"
)

// Tools are the external programs a scaffolded project relies on.
var Tools = []string{"node", "git", "npm", "pnpm", "yarn", "bun"}

// semverRegex matches versions like "v22.11.0" or "10.9.0".
var semverRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// ToolInfo describes an external tool found (or not) on PATH.
type ToolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Found   bool   `json:"found"`

	// Message explains a missing or unreadable tool.
	Message string `json:"message,omitempty"`
}

// String returns an aligned one-line summary.
func (t ToolInfo) String() string {
	if !t.Found {
		return fmt.Sprintf("  %-6s not found", t.Name)
	}
	if t.Version == "" {
		return fmt.Sprintf("  %-6s unknown (%s)", t.Name, t.Message)
	}
	return fmt.Sprintf("  %-6s %s", t.Name, t.Version)
}

// DetectTool runs `<name> --version` and extracts the version number.
func DetectTool(ctx context.Context, r exec.Runner, name string) ToolInfo {
	res, err := r.Run(ctx, name, []string{"--version"}, exec.RunOpts{})
	if errors.Is(err, exec.ErrCommandNotFound) {
		return ToolInfo{Name: name, Message: name + " not found in PATH"}
	}
	if err != nil {
		return ToolInfo{Name: name, Found: true, Message: err.Error()}
	}
	if !res.Success() {
		return ToolInfo{Name: name, Found: true, Message: fmt.Sprintf("exit status %d", res.ExitCode)}
	}

	v, err := extractVersion(res.Stdout)
	if err != nil {
		return ToolInfo{Name: name, Found: true, Message: err.Error()}
	}
	return ToolInfo{Name: name, Version: v, Found: true}
}

// DetectTools detects every tool in names.
func DetectTools(ctx context.Context, r exec.Runner, names []string) []ToolInfo {
	infos := make([]ToolInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, DetectTool(ctx, r, name))
	}
	return infos
}

// extractVersion extracts the first version number from tool output.
// Output formats vary, e.g. "v22.11.0", "git version 2.47.1", "1.22.22".
func extractVersion(output string) (string, error) {
	match := semverRegex.FindString(output)
	if match == "" {
		return "", &versionParseError{output: strings.TrimSpace(output)}
	}

	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}

	return match, nil
}

// versionParseError indicates failure to parse version output.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse version from output: " + e.output
}
