package gemdocs_test

import (
	"testing"

	"github.com/philschmid/gemdocs"
	"github.com/stretchr/testify/assert"
)

func TestIsMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"TEXT/HTML", true},
		{"application/xhtml+xml", true},
		{"text/plain", false},
		{"text/markdown; charset=utf-8", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, gemdocs.IsMarkup(tt.contentType))
		})
	}
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	t.Run("trims lines and drops blanks", func(t *testing.T) {
		t.Parallel()

		got := gemdocs.NormalizeText("  Title  \n\n\n   Body text \n")

		assert.Equal(t, "Title\nBody text", got)
	})

	t.Run("splits on double-space runs", func(t *testing.T) {
		t.Parallel()

		got := gemdocs.NormalizeText("Heading One  Heading Two    Heading Three")

		assert.Equal(t, "Heading One\nHeading Two\nHeading Three", got)
	})

	t.Run("keeps single spaces inside phrases", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a b c", gemdocs.NormalizeText("a b c"))
	})

	t.Run("handles carriage returns", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "one\ntwo\nthree", gemdocs.NormalizeText("one\r\ntwo\rthree"))
	})

	t.Run("returns empty for whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, gemdocs.NormalizeText(" \n\t\n "))
	})
}
