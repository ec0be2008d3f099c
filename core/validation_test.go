package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDocument(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	})

	t.Run("no title and no content", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(&Document{}), ErrEmptyContent)
	})

	t.Run("title only is enough", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(&Document{Title: "Q3 emissions report"}))
	})

	t.Run("content only is enough", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(&Document{Content: "some text"}))
	})

	t.Run("future publication date", func(t *testing.T) {
		doc := &Document{
			Title: "from the future",
			Date:  time.Now().Add(48 * time.Hour),
		}
		assert.ErrorIs(t, ValidateDocument(doc), ErrInvalidTimestamp)
	})
}

func TestValidateSearchMode(t *testing.T) {
	for _, mode := range []SearchMode{ModeHybrid, ModeKeyword, ModeVector, ModeRealtime} {
		assert.NoError(t, ValidateSearchMode(mode))
	}
	assert.ErrorIs(t, ValidateSearchMode(SearchMode(0)), ErrUnsupportedMode)
	assert.ErrorIs(t, ValidateSearchMode(SearchMode(99)), ErrUnsupportedMode)
}
