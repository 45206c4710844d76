package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDig(t *testing.T) {
	doc := map[string]any{
		"a": map[string]any{"b": []any{map[string]any{"c": "x"}, "y"}},
		"s": map[string]any{"only": "1"},
	}
	assert.Equal(t, "x", dig(doc, "a", "b", 0, "c"))
	assert.Equal(t, "y", dig(doc, "a", "b", 1))
	assert.Nil(t, dig(doc, "a", "b", 5))
	assert.Nil(t, dig(doc, "a", "b", -1))
	assert.Nil(t, dig(doc, "a", "missing", "c"))
	assert.Nil(t, dig(doc, "a", "b", 1, "c"))
	assert.Equal(t, "1", dig(doc, "s", 0, "only"), "lone map indexed at 0")
	assert.Nil(t, dig(doc, "s", 1))
	assert.Equal(t, "def", getOr(doc, "def", "nope"))
}

func TestScalarCoercion(t *testing.T) {
	assert.Equal(t, "12345", str(float64(12345)))
	assert.Equal(t, "4.5", str(4.5))
	assert.Equal(t, "true", str(true))
	assert.Equal(t, "t", str(map[string]any{"@a": "1", "#text": " t "}))
	assert.Equal(t, "", str([]any{"x"}))

	assert.Nil(t, ptr("  "))
	assert.InDelta(t, 41.5, *flt("41,5"), 1e-9)
	assert.Nil(t, flt("n/a"))
	assert.Equal(t, []any{"one"}, list("one"))
	assert.Nil(t, list(nil))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "5", *starFromText("5 stars luxury hotel"))
	assert.Nil(t, starFromText("luxury"))
	assert.Equal(t, "4", *cleanStar(4.0))
	assert.Equal(t, "3.5", *cleanStar("3.5"))
	assert.Equal(t, "Hello world", htmlText("<p>Hello <b>world</b></p>"))
	assert.Equal(t, []string{"Bar", "Pool", "Spa & Gym"}, htmlList("Bar<BR />Pool<br>Spa &amp; Gym<BR/>"))
}

func TestFindFirstPrefersShallowMatch(t *testing.T) {
	doc := map[string]any{
		"a": map[string]any{"deep": map[string]any{"k": "deep"}},
		"b": map[string]any{"k": "shallow"},
	}
	assert.Equal(t, "shallow", findFirst(doc, "k"))
	assert.Nil(t, findFirst(doc, "none"))
}
