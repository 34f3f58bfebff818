package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateReadability(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty", text: "", want: 0.0},
		{name: "whitespace only", text: "   \n\t", want: 0.0},
		{name: "terminators only", text: "...!?", want: 0.0},
		{name: "single short sentence", text: "The cat sat.", want: 206.835 - 1.015*3 - 84.6*1},
		{name: "two sentences", text: "The cat sat. A dog ran!", want: 206.835 - 1.015*(6.0/2.0) - 84.6*1},
		{name: "no terminator counts as one sentence", text: "cat dog", want: 206.835 - 1.015*2 - 84.6*1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateReadability(tt.text), 1e-9)
		})
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"the", 1}, // silent e floors at 1
		{"beautiful", 3},
		{"rhythm", 1},
		{"syllable", 2},
		{"Code.", 1},
		{"queue", 1},
		{"SEO", 1},
		{"123", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSyllables(tt.word))
		})
	}
}

func TestKeywordDensity(t *testing.T) {
	t.Run("single word keyword", func(t *testing.T) {
		d := KeywordDensity("seo is great. SEO tips", []string{"SEO"})
		assert.Equal(t, 40.0, d["SEO"])
	})

	t.Run("multi word phrase weighted by its length", func(t *testing.T) {
		d := KeywordDensity("las vegas seo rocks. Las Vegas SEO", []string{"Las Vegas SEO"})
		assert.Equal(t, 85.71, d["Las Vegas SEO"])
	})

	t.Run("absent keyword is zero", func(t *testing.T) {
		d := KeywordDensity("nothing relevant here", []string{"seo", "vegas"})
		assert.Equal(t, map[string]float64{"seo": 0.0, "vegas": 0.0}, d)
	})

	t.Run("zero words yields zero for every keyword", func(t *testing.T) {
		d := KeywordDensity("", []string{"seo", "marketing"})
		assert.Equal(t, map[string]float64{"seo": 0.0, "marketing": 0.0}, d)
	})

	t.Run("blank keyword is zero", func(t *testing.T) {
		d := KeywordDensity("some words", []string{" "})
		assert.Equal(t, 0.0, d[" "])
	})

	t.Run("values are non-negative", func(t *testing.T) {
		for _, v := range KeywordDensity("seo seo marketing", []string{"seo", "marketing", "absent"}) {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	})
}

func TestHeadingStructure(t *testing.T) {
	html := `<html><body>
<h1>Main</h1>
<h2>First</h2>
<H2 class="sub">Second
spanning lines</H2>
</body></html>`

	assert.Equal(t, map[string]int{"h1": 1, "h2": 2, "h3": 0, "h4": 0, "h5": 0, "h6": 0}, HeadingStructure(html))
	assert.Len(t, HeadingStructure("<p>no headings</p>"), 6)
}

func TestMetaDescriptionAndTitleLength(t *testing.T) {
	html := `<head><title> Vegas SEO </title><meta name="description" content="Short description"></head>`

	meta := MetaDescriptionLength(html)
	require.NotNil(t, meta)
	assert.Equal(t, 17, *meta)

	title := TitleLength(html)
	require.NotNil(t, title)
	assert.Equal(t, 9, *title)

	assert.Nil(t, MetaDescriptionLength("<head></head>"))
	assert.Nil(t, TitleLength("<head></head>"))
}
