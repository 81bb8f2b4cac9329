package gemdocs_test

import (
	"testing"

	"github.com/philschmid/gemdocs"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps plain words", "function calling", "function calling"},
		{"quotes version numbers", "gemini 2.5", `gemini "2.5"`},
		{"quotes hyphenated terms", "gemini-pro", `"gemini-pro"`},
		{"doubles embedded quotes", `say "hi"`, `say """hi"""`},
		{"quotes operator keywords", "cats AND dogs", `cats "AND" dogs`},
		{"leaves lowercase keywords as words", "cats and dogs", "cats and dogs"},
		{"quotes column filters", "title:embeddings", `"title:embeddings"`},
		{"quotes prefix operators", "embed*", `"embed*"`},
		{"quotes parentheses", "(injection) OR", `"(injection)" "OR"`},
		{"keeps non-ASCII words", "über straße", "über straße"},
		{"collapses whitespace", "  function \t calling  ", "function calling"},
		{"returns empty for blank input", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, gemdocs.SanitizeQuery(tt.in))
		})
	}
}

func TestCombineQueries(t *testing.T) {
	t.Parallel()

	t.Run("groups and ORs queries", func(t *testing.T) {
		t.Parallel()

		got := gemdocs.CombineQueries([]string{"function calling", "gemini 2.5"})

		assert.Equal(t, `(function calling) OR (gemini "2.5")`, got)
	})

	t.Run("single query is grouped", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "(embeddings)", gemdocs.CombineQueries([]string{"embeddings"}))
	})

	t.Run("drops blank queries", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "(models)", gemdocs.CombineQueries([]string{"", "  ", "models"}))
	})

	t.Run("returns empty for no queries", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, gemdocs.CombineQueries(nil))
	})
}
