package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

func TestIgnoredFileSet_AddKeepsFirstSeenOrder(t *testing.T) {
	set := NewIgnoredFileSet()

	assert.Equal(t, 2, set.Add("b.go", "a.go"))
	assert.Equal(t, 1, set.Add("a.go", "c.go"))

	assert.Equal(t, []m.Path{"b.go", "a.go", "c.go"}, set.Files())
	assert.Equal(t, 3, set.Len())
}

func TestIgnoredFileSet_FilesReturnsCopy(t *testing.T) {
	set := NewIgnoredFileSet()
	set.Add("a.go")

	files := set.Files()
	files[0] = "changed.go"

	assert.Equal(t, []m.Path{"a.go"}, set.Files())
}

func TestIgnoredFileSet_RunsAreIndependent(t *testing.T) {
	first := NewIgnoredFileSet()
	second := NewIgnoredFileSet()

	first.Add("a.go")

	assert.NotEqual(t, first.RunID(), second.RunID())
	assert.Empty(t, second.Files())
}

func TestIgnoredFileSet_Nil(t *testing.T) {
	var set *IgnoredFileSet

	assert.Zero(t, set.Add("a.go"))
	assert.Nil(t, set.Files())
	assert.Zero(t, set.Len())
	assert.Empty(t, set.RunID())
}

func TestIgnoredFileSet_ConcurrentAdd(t *testing.T) {
	set := NewIgnoredFileSet()

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			set.Add("a.go", "b.go", "c.go")
		}()
	}

	wg.Wait()

	assert.Equal(t, 3, set.Len())
}
