package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	p := &ExtractedParams{}
	p.Normalize()

	assert.Equal(t, IntentRecommendation, p.Intent)
	assert.Equal(t, MediaTypeAll, p.Type)
	assert.Equal(t, DefaultResultCount, p.Count)
}

func TestNormalizeInvalidFieldsDroppedIndependently(t *testing.T) {
	p := &ExtractedParams{
		Intent:   "SOMETHING_ELSE",
		Type:     "anime",
		Year:     1800,
		Count:    200,
		Genres:   []int{18, 0, -5, 35},
		Keywords: []string{" space ", "", "aliens"},
		Query:    "  the matrix  ",
	}
	p.Normalize()

	assert.Equal(t, IntentRecommendation, p.Intent)
	assert.Equal(t, MediaTypeAll, p.Type)
	assert.Zero(t, p.Year)
	assert.Equal(t, MaxResultCount, p.Count)
	assert.Equal(t, []int{18, 35}, p.Genres)
	assert.Equal(t, []string{"space", "aliens"}, p.Keywords)
	assert.Equal(t, "the matrix", p.Query)
}

func TestNormalizeYearBounds(t *testing.T) {
	nextYear := time.Now().Year() + 1

	p := &ExtractedParams{Year: nextYear}
	p.Normalize()
	assert.Equal(t, nextYear, p.Year)

	p = &ExtractedParams{Year: nextYear + 1}
	p.Normalize()
	assert.Zero(t, p.Year)

	p = &ExtractedParams{Year: MinYear}
	p.Normalize()
	assert.Equal(t, MinYear, p.Year)
}

func TestFallbackParamsMediaTypeHints(t *testing.T) {
	p := FallbackParams("some good films please")
	assert.Equal(t, MediaTypeMovie, p.Type)
	assert.Equal(t, IntentRecommendation, p.Intent)
	assert.Equal(t, "some good films please", p.Query)
	assert.Equal(t, DefaultResultCount, p.Count)

	p = FallbackParams("a new tv series to binge")
	assert.Equal(t, MediaTypeTV, p.Type)

	p = FallbackParams("something fun to watch")
	assert.Equal(t, MediaTypeAll, p.Type)
}
