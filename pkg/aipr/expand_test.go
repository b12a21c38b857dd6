package aipr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failRenderer struct{}

func (failRenderer) Render(name string, data map[string]interface{}) (string, error) {
	return "", &RenderError{Template: name, Message: "execution failed"}
}

func TestExpand_NoMarkers(t *testing.T) {
	out, err := Expand("Some random text without link...", 100)
	require.NoError(t, err)
	assert.Equal(t, "Some random text without link...", out)
}

func TestExpand_FixtureContent(t *testing.T) {
	out, err := Expand(simpleBookContent, 201)
	require.NoError(t, err)

	expected := fmt.Sprintf(headerNoColabFmt, "1 min") +
		" " +
		fmt.Sprintf(headerWithColabFmt, "nlp/lora.ipynb", "1 min") +
		" Some random " +
		fmt.Sprintf(mdLinkFmt, "https://fake.io", "text with") +
		" and more text ..."
	assert.Equal(t, expected, out)
}

func TestExpand_NoTrailingText(t *testing.T) {
	out, err := Expand("x {{ #aipr_header }}", 200)
	require.NoError(t, err)
	assert.Equal(t, "x "+fmt.Sprintf(headerNoColabFmt, "1 min"), out)
}

func TestExpand_AdjacentDirectives(t *testing.T) {
	out, err := Expand("{{ #aipr_header }}{{ #aipr_header }}", 200)
	require.NoError(t, err)
	header := fmt.Sprintf(headerNoColabFmt, "1 min")
	assert.Equal(t, header+header, out)
}

func TestExpand_MultilineDirective(t *testing.T) {
	out, err := Expand("{{ #aipr_header\ncolab=a.ipynb }}", 0)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(headerWithColabFmt, "a.ipynb", "0 min"), out)
}

func TestExpand_EscapedDirective(t *testing.T) {
	s := `\{{#aipr_header}} stays`
	out, err := Expand(s, 100)
	require.NoError(t, err)
	assert.Equal(t, s, out)
}

func TestExpand_EscapedSwallowsSameLine(t *testing.T) {
	s := `\{{#x}} and {{ #aipr_header }}`
	out, err := Expand(s, 100)
	require.NoError(t, err)
	assert.Equal(t, s, out)
}

func TestExpand_EscapedLink(t *testing.T) {
	s := `see \[x](https://y.io) here`
	out, err := Expand(s, 100)
	require.NoError(t, err)
	assert.Equal(t, s, out)
}

func TestExpand_ImageLinkUntouched(t *testing.T) {
	s := `![alt](https://y.io/img.png)`
	out, err := Expand(s, 100)
	require.NoError(t, err)
	assert.Equal(t, s, out)
}

func TestExpand_UnknownMarkersUntouched(t *testing.T) {
	s := "{{#my_author ar.rs}} and [a](ftp://x.io)"
	out, err := Expand(s, 100)
	require.NoError(t, err)
	assert.Equal(t, s, out)
}

func TestExpand_WordsPerMinuteOption(t *testing.T) {
	out, err := ExpandWithOptions("{{ #aipr_header }}", 100, Options{WordsPerMinute: 50})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(headerNoColabFmt, "2 min"), out)
}

func TestExpand_RenderFailureAborts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"directive", "text {{ #aipr_header }} text"},
		{"link", "text [a](https://x.io) text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ExpandWithOptions(tt.input, 100, Options{Renderer: failRenderer{}})
			require.Error(t, err)
			assert.Empty(t, out)

			var rerr *RenderError
			assert.ErrorAs(t, err, &rerr)
		})
	}
}
