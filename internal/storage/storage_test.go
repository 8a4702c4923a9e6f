package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRead(t *testing.T) {
	store, err := New(t.TempDir(), 1<<20)
	require.NoError(t, err)

	name, err := store.Save("My Resume.PDF", []byte("resume content"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, "My Resume")

	data, err := store.Read(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("resume content"), data)
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store, err := New(t.TempDir(), 1<<20)
	require.NoError(t, err)

	_, err = store.Save("notes.txt", []byte("plain text"))
	assert.Error(t, err)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store, err := New(t.TempDir(), 10)
	require.NoError(t, err)

	_, err = store.Save("resume.pdf", make([]byte, 11))
	assert.Error(t, err)
}

func TestReadRejectsPathTraversal(t *testing.T) {
	store, err := New(t.TempDir(), 1<<20)
	require.NoError(t, err)

	_, err = store.Read("../etc/passwd")
	assert.Error(t, err)

	_, err = store.Read("")
	assert.Error(t, err)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("resume.pdf"))
	assert.True(t, Allowed("resume.DOCX"))
	assert.False(t, Allowed("resume.exe"))
	assert.False(t, Allowed("resume"))
}
