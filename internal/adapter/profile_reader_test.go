package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	m "github.com/NeatNerdPrime/undercover/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProfileReader_ReadProfiles(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "cover.out")
	writeTestFile(t, path, `mode: set
example.com/project/lib/a.go:3.20,5.2 1 1
example.com/project/lib/a.go:7.20,9.2 1 0
example.com/project/main.go:3.13,5.2 1 1
`)

	reader := NewLocalProfileReader()
	set, err := reader.ReadProfiles(context.Background(), []m.Path{m.Path(path)})
	require.NoError(t, err)

	require.Len(t, set.Profiles, 2)
	assert.Equal(t, "example.com/project/lib/a.go", set.Profiles[0].FileName)
	assert.Len(t, set.Profiles[0].Blocks, 2)
	assert.Equal(t, "example.com/project/main.go", set.Profiles[1].FileName)
	assert.False(t, set.ModTime.IsZero())
}

func TestLocalProfileReader_MergesProfiles(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "unit.out")
	second := filepath.Join(root, "integration.out")
	writeTestFile(t, first, `mode: count
example.com/project/lib/a.go:3.20,5.2 1 2
example.com/project/lib/a.go:7.20,9.2 1 0
`)
	writeTestFile(t, second, `mode: count
example.com/project/lib/a.go:7.20,9.2 1 3
example.com/project/lib/b.go:3.20,4.2 1 0
`)

	newest := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(second, newest, newest))

	reader := NewLocalProfileReader()
	set, err := reader.ReadProfiles(context.Background(), []m.Path{m.Path(first), m.Path(second)})
	require.NoError(t, err)

	require.Len(t, set.Profiles, 2)

	a := set.Profiles[0]
	require.Len(t, a.Blocks, 2)
	assert.Equal(t, 2, a.Blocks[0].Count)
	assert.Equal(t, 3, a.Blocks[1].Count)

	assert.True(t, set.ModTime.Equal(newest), "ModTime = %v, want %v", set.ModTime, newest)
}

func TestLocalProfileReader_Errors(t *testing.T) {
	reader := NewLocalProfileReader()

	_, err := reader.ReadProfiles(context.Background(), nil)
	require.Error(t, err)

	_, err = reader.ReadProfiles(context.Background(), []m.Path{m.Path(filepath.Join(t.TempDir(), "missing.out"))})
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.out")
	writeTestFile(t, bad, "mode: set\nnot a profile line\n")
	_, err = reader.ReadProfiles(context.Background(), []m.Path{m.Path(bad)})
	require.Error(t, err)
}
