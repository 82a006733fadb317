package texts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfingers/typerace/internal/dependencies/mocks"
)

func TestPickUsesRandomIndex(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(1)

	s := New(rnd)
	s.LoadTexts([]string{"first", "second", "third"})

	assert.Equal(t, "second", s.Pick())
}

func TestBuiltInTextsPresent(t *testing.T) {
	s := New(mocks.NewMockRandom())
	assert.Equal(t, 4, s.Count())
	assert.NotEmpty(t, s.Pick())
}

func TestLoadTextsIgnoresEmptySet(t *testing.T) {
	s := New(mocks.NewMockRandom())
	s.LoadTexts(nil)
	assert.Equal(t, 4, s.Count())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.txt")
	content := "alpha paragraph\n\nbeta paragraph\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := New(mocks.NewMockRandom())
	require.NoError(t, s.LoadFromFile(path))

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "alpha paragraph", s.Pick())
}

func TestLoadFromFileMissing(t *testing.T) {
	s := New(mocks.NewMockRandom())
	assert.Error(t, s.LoadFromFile(filepath.Join(t.TempDir(), "nope.txt")))
	assert.Equal(t, 4, s.Count())
}
