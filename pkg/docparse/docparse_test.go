package docparse_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"go-candidate-backend/pkg/docparse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveType(t *testing.T) {
	t.Run("declared type on allow-list wins", func(t *testing.T) {
		got, err := docparse.ResolveType("application/pdf", []byte("irrelevant"))
		require.NoError(t, err)
		assert.Equal(t, docparse.MIMEPDF, got)
	})

	t.Run("declared type with parameters is canonicalized", func(t *testing.T) {
		got, err := docparse.ResolveType("text/plain; charset=utf-8", []byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, docparse.MIMEText, got)
	})

	t.Run("rtf alias maps to canonical type", func(t *testing.T) {
		got, err := docparse.ResolveType("text/rtf", []byte(`{\rtf1 hi}`))
		require.NoError(t, err)
		assert.Equal(t, docparse.MIMERTF, got)
	})

	t.Run("sniffed plain text is accepted when declared type is bogus", func(t *testing.T) {
		got, err := docparse.ResolveType("application/octet-stream", []byte("plain old text resume"))
		require.NoError(t, err)
		assert.Equal(t, docparse.MIMEText, got)
	})

	t.Run("zip archive is rejected", func(t *testing.T) {
		_, err := docparse.ResolveType("application/zip", buildZip(t, "notes.txt", "zipped"))
		assert.ErrorIs(t, err, docparse.ErrUnsupportedType)
	})
}

func TestExtractTextPlain(t *testing.T) {
	text, err := docparse.ExtractText([]byte("line one\r\nline two"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}

func TestExtractTextEmptyDocument(t *testing.T) {
	_, err := docparse.ExtractText([]byte("   \n\t  "), "text/plain")
	assert.ErrorIs(t, err, docparse.ErrEmptyDocument)
}

func TestExtractTextUnsupportedType(t *testing.T) {
	_, err := docparse.ExtractText([]byte("data"), "application/zip")
	assert.ErrorIs(t, err, docparse.ErrUnsupportedType)
}

func TestExtractTextRTF(t *testing.T) {
	src := `{\rtf1\ansi{\fonttbl{\f0 Arial;}}\f0 Hello\par World}`
	text, err := docparse.ExtractText([]byte(src), docparse.MIMERTF)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld", text)
}

func TestExtractTextRTFRejectsNonRTF(t *testing.T) {
	_, err := docparse.ExtractText([]byte("definitely not rtf"), docparse.MIMERTF)
	assert.Error(t, err)
}

func TestExtractTextODT(t *testing.T) {
	content := `<?xml version="1.0"?><office:document-content>` +
		`<office:body><office:text>` +
		`<text:p>First paragraph</text:p><text:p>Second &amp; last</text:p>` +
		`</office:text></office:body></office:document-content>`

	text, err := docparse.ExtractText(buildZip(t, "content.xml", content), docparse.MIMEODT)
	require.NoError(t, err)
	assert.Contains(t, text, "First paragraph")
	assert.Contains(t, text, "Second & last")
}

func buildZip(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(name)
	require.NoError(t, err)
	_, err = f.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}
