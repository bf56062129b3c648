package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSaveGeneratesServerName(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(EventImages, fileHeader(t, "../../etc/passwd.png", []byte("png")))
	require.NoError(t, err)
	assert.NotContains(t, name, "passwd")
	assert.Equal(t, ".png", filepath.Ext(name))

	p, err := store.Path(EventImages, name)
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(ProductImages, fileHeader(t, "script.sh", []byte("#!/bin/sh")))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestPathUsesBaseNameOnly(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("x"), 0o644))

	_, err = store.Path(ProfilePictures, "../secret.txt")
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = store.Path(ProfilePictures, "..")
	assert.Error(t, err)
}

func TestRemoveMissingFileIsNoop(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Remove(EventImages, "nope.png"))
	assert.NoError(t, store.Remove(EventImages, ""))
}
