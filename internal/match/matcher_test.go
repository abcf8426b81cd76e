package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ordnung/internal/match"
	"ordnung/pkg/types"
)

func TestMatches(t *testing.T) {
	m := match.New()

	t.Run("case insensitive", func(t *testing.T) {
		assert.True(t, m.Matches("Report.PDF", "*.pdf"))
		assert.True(t, m.Matches("report.pdf", "*.PDF"))
	})

	t.Run("separator normalization", func(t *testing.T) {
		assert.True(t, m.Matches(`C:\Users\Temp\file.txt`, "*/temp/*"))
		assert.True(t, m.Matches("/home/user/temp/file.txt", "*temp*"))
	})

	t.Run("question mark matches a single character", func(t *testing.T) {
		assert.True(t, m.Matches("a.txt", "?.txt"))
		assert.False(t, m.Matches("ab.txt", "?.txt"))
	})

	t.Run("star spans path separators", func(t *testing.T) {
		assert.True(t, m.Matches("/root/a/b/c/file.log", "*.log"))
	})

	t.Run("empty operands never match", func(t *testing.T) {
		assert.False(t, m.Matches("", "*.txt"))
		assert.False(t, m.Matches("file.txt", ""))
		assert.False(t, m.Matches("file.txt", "   "))
	})

	t.Run("invalid pattern fails open", func(t *testing.T) {
		assert.False(t, m.Matches("file.txt", "[invalid"))
		// Repeated use hits the cache, still no match.
		assert.False(t, m.Matches("file.txt", "[invalid"))
	})
}

func TestIsExcluded(t *testing.T) {
	m := match.New()
	patterns := []string{"*.tmp", "", "  ", "*cache*"}

	assert.True(t, m.IsExcluded("/data/session.tmp", patterns))
	assert.True(t, m.IsExcluded("/data/MyCache/file.txt", patterns))
	assert.False(t, m.IsExcluded("/data/notes.txt", patterns))

	t.Run("empty inputs exclude nothing", func(t *testing.T) {
		assert.False(t, m.IsExcluded("", patterns))
		assert.False(t, m.IsExcluded("/data/session.tmp", nil))
		assert.False(t, m.IsExcluded("/data/session.tmp", []string{"", " "}))
	})
}

func TestExclusionSets(t *testing.T) {
	m := match.New()
	set := types.ExclusionSet{
		FilePatterns:   []string{"*.lock"},
		FolderPatterns: []string{"*node_modules*"},
	}

	assert.True(t, m.FileExcluded("/repo/pkg.lock", set))
	assert.False(t, m.FileExcluded("/repo/pkg.json", set))
	assert.True(t, m.FolderExcluded("/repo/node_modules", set))
	assert.False(t, m.FolderExcluded("/repo/src", set))
}
