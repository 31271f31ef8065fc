package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("my-app", nil, NoColorStyles()))
}

func TestRenderFileTree_DirectoriesFirst(t *testing.T) {
	files := map[string]string{
		"package.json":          "Package manifest",
		"src/index.ts":          "",
		"src/db/auth-schema.ts": "Auth schema",
		".env":                  "",
	}

	out := RenderFileTree("my-app", files, NoColorStyles())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "my-app/", lines[0])
	assert.Equal(t, "├── src/", lines[1], "directories sort before files")
	assert.Equal(t, "│   ├── db/", lines[2])
	assert.Contains(t, lines[3], "│   │   └── auth-schema.ts")
	assert.Contains(t, lines[3], "Auth schema")
	assert.Equal(t, "│   └── index.ts", lines[4])
	assert.Equal(t, "├── .env", lines[5])
	assert.Contains(t, out, "└── package.json")
}

func TestRenderSimpleTree(t *testing.T) {
	out := RenderSimpleTree("app", []string{"a.ts", "b/c.ts"}, NoColorStyles())
	assert.Contains(t, out, "app/\n")
	assert.Contains(t, out, "├── b/\n")
	assert.Contains(t, out, "│   └── c.ts\n")
	assert.Contains(t, out, "└── a.ts\n")
}
