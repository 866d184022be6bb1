package service

import (
	"encoding/json"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
)

func TestGlossIDFromHit(t *testing.T) {
	id, ok := glossIDFromHit(meilisearch.Hit{"id": json.RawMessage(`42`)})
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = glossIDFromHit(meilisearch.Hit{"text": json.RawMessage(`"hello"`)})
	assert.False(t, ok)

	_, ok = glossIDFromHit(meilisearch.Hit{"id": json.RawMessage(`"not-a-number"`)})
	assert.False(t, ok)
}

func TestCleanTextStripsMarkup(t *testing.T) {
	s := &meiliSearchService{sanitizer: bluemonday.StrictPolicy()}
	assert.Equal(t, "hello world", s.cleanText("<b>hello</b>\n  <script>x()</script>world"))
}
