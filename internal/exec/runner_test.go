package exec

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSRunner_ExitCode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"exit 0", []string{"-c", "exit 0"}, 0},
		{"exit 1", []string{"-c", "exit 1"}, 1},
		{"exit 42", []string{"-c", "exit 42"}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewOSRunner().Run(context.Background(), "sh", tt.args, RunOpts{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.ExitCode)
			assert.Equal(t, tt.want == 0, res.Success())
		})
	}
}

func TestOSRunner_CapturesOutput(t *testing.T) {
	var live bytes.Buffer
	res, err := NewOSRunner().Run(context.Background(), "sh",
		[]string{"-c", "echo out; echo err >&2"}, RunOpts{Stdout: &live})
	require.NoError(t, err)

	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, "out\n", live.String())
}

func TestOSRunner_DirAndEnv(t *testing.T) {
	dir := t.TempDir()
	res, err := NewOSRunner().Run(context.Background(), "sh",
		[]string{"-c", "pwd; echo $CREATE_EXPRESS_TEST"},
		RunOpts{Dir: dir, Env: map[string]string{"CREATE_EXPRESS_TEST": "hello"}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], strings.TrimPrefix(dir, "/private")))
	assert.Equal(t, "hello", lines[1])
}

func TestOSRunner_NotFound(t *testing.T) {
	_, err := NewOSRunner().Run(context.Background(), "no-such-command-abc123", nil, RunOpts{})
	assert.ErrorIs(t, err, ErrCommandNotFound)
}

func TestOSRunner_Canceled(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"direct child", "sleep 10"},
		{"grandchild holds output", "sleep 10 & wait"},
		{"grandchild ignores parent", "(sleep 10; echo late) & sleep 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err := NewOSRunner().Run(ctx, "sh", []string{"-c", tt.script}, RunOpts{})
			elapsed := time.Since(start)

			assert.ErrorIs(t, err, context.DeadlineExceeded)
			assert.Less(t, elapsed, waitDelay+time.Second)
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "extra whitespace",
			line:     "  npx -y neondb   --yes ",
			wantName: "npx",
			wantArgs: []string{"-y", "neondb", "--yes"},
		},
		{
			name:     "double quoted argument",
			line:     `npx -y neondb --yes --env ".env local"`,
			wantName: "npx",
			wantArgs: []string{"-y", "neondb", "--yes", "--env", ".env local"},
		},
		{
			name:     "single quoted argument",
			line:     `neonctl projects create --name 'my app'`,
			wantName: "neonctl",
			wantArgs: []string{"projects", "create", "--name", "my app"},
		},
		{
			name:     "no arguments",
			line:     "provision",
			wantName: "provision",
			wantArgs: []string{},
		},
		{name: "blank", line: "   ", wantErr: true},
		{name: "unterminated quote", line: `npx "neondb`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, err := Split(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "git", CommandLine("git", nil))
	assert.Equal(t, "git init -q", CommandLine("git", []string{"init", "-q"}))
}
