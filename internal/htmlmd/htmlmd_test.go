package htmlmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertEmptyInput(t *testing.T) {
	c := New()

	for _, src := range []string{"", "   ", "\n\t"} {
		out, err := c.Convert(src)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestConvertDropsEmptyParagraphs(t *testing.T) {
	c := New()

	out, err := c.Convert("<p></p><p>Hello</p><p>&nbsp;</p>")
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestConvertKeepsNestedContent(t *testing.T) {
	c := New()

	out, err := c.Convert("<p><span>kept</span></p><p><span> </span></p>")
	require.NoError(t, err)
	assert.Equal(t, "kept", out)
}

func TestConvertInlineFormatting(t *testing.T) {
	c := New()

	out, err := c.Convert("<p>Made of <strong>silk</strong> and <em>lace</em>.</p>")
	require.NoError(t, err)
	assert.Equal(t, "Made of **silk** and *lace*.", out)
}

func TestConvertHeadingsAndLists(t *testing.T) {
	c := New()

	out, err := c.Convert("<h2>Details</h2><ul><li>One</li><li>Two</li></ul>")
	require.NoError(t, err)
	assert.Contains(t, out, "## Details")
	assert.Contains(t, out, "- One")
	assert.Contains(t, out, "- Two")
}

func TestConvertTrimsSurroundingWhitespace(t *testing.T) {
	c := New()

	out, err := c.Convert("<p>body</p>")
	require.NoError(t, err)
	assert.Equal(t, "body", out)
}
