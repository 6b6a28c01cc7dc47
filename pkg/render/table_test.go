package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/stepbook/flownote/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Render(t *testing.T) {
	tr, err := render.NewTable()
	require.NoError(t, err)

	payload := `{
		"schema": {"fields": [{"name": "city", "type": "string"}, {"name": "pop", "type": "integer"}]},
		"data": [
			{"city": "Lisboa", "pop": 545796},
			{"city": "Porto", "pop": 231800}
		]
	}`

	var buf bytes.Buffer
	require.NoError(t, tr.Render(&buf, []byte(payload)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4, "header, separator and two rows")
	assert.Contains(t, lines[0], "city")
	assert.Contains(t, lines[0], "pop")
	assert.Contains(t, lines[2], "Lisboa")
	assert.Contains(t, lines[2], "545796")
	assert.Contains(t, lines[3], "Porto")
}

func TestTable_InvalidPayload(t *testing.T) {
	tr, err := render.NewTable()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, tr.Render(&buf, []byte("not json")))
	assert.Error(t, tr.Render(&buf, []byte(`{"data": []}`)), "missing schema fields is rejected")
}

func TestTable_MissingValues(t *testing.T) {
	tr, err := render.NewTable()
	require.NoError(t, err)

	payload := `{
		"schema": {"fields": [{"name": "a"}, {"name": "b"}]},
		"data": [{"a": "only"}]
	}`

	var buf bytes.Buffer
	require.NoError(t, tr.Render(&buf, []byte(payload)))
	assert.Contains(t, buf.String(), "only")
}

func TestMarkdown_Render(t *testing.T) {
	md, err := render.NewMarkdownStyled(glamour.WithStandardStyle("notty"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, md.Render(&buf, []byte("# Heading\n\nSome *emphasis*.")))
	assert.Contains(t, buf.String(), "Heading")
	assert.Contains(t, buf.String(), "emphasis")
}

func TestPlainText_Render(t *testing.T) {
	pt, err := render.NewPlainText()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pt.Render(&buf, []byte("hello")))
	assert.Equal(t, "hello\n", buf.String())
}
