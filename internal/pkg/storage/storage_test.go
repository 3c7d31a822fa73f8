package storage

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["image"][0]
}

func TestPhotoStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPhotoStore(dir, "/uploads", 1024)
	require.NoError(t, err)

	publicPath, err := store.Save(fileHeader(t, "box.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/"))
	assert.True(t, strings.HasSuffix(publicPath, ".png"))

	saved, err := os.ReadFile(filepath.Join(dir, filepath.Base(publicPath)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(saved))

	require.NoError(t, store.Remove(publicPath))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(publicPath)))
	assert.True(t, os.IsNotExist(err))
}

func TestPhotoStore_Rejects(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), "/uploads", 4)
	require.NoError(t, err)

	_, err = store.Save(fileHeader(t, "notes.txt", []byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedFileExt)

	_, err = store.Save(fileHeader(t, "big.jpg", []byte("too many bytes")))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

type failingReader struct {
	sent bool
}

var errBrokenUpload = errors.New("connection reset")

func (r *failingReader) Read(p []byte) (int, error) {
	if r.sent {
		return 0, errBrokenUpload
	}
	r.sent = true

	return copy(p, "partial"), nil
}

func TestPhotoStore_WriteRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPhotoStore(dir, "/uploads", 1024)
	require.NoError(t, err)

	target := filepath.Join(dir, "broken.png")
	err = store.write(target, &failingReader{})
	assert.ErrorIs(t, err, errBrokenUpload)

	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err))

	err = store.write(filepath.Join(dir, "ok.png"), io.LimitReader(&failingReader{}, 7))
	require.NoError(t, err)

	saved, err := os.ReadFile(filepath.Join(dir, "ok.png"))
	require.NoError(t, err)
	assert.Equal(t, "partial", string(saved))
}
