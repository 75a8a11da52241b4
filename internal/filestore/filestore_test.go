package filestore

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return s
}

func multipartFile(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveUpload(t *testing.T) {
	s := testStore(t)

	f, err := s.SaveUpload(multipartFile(t, "notice.pdf", "application/pdf", []byte("pdf-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "notice.pdf", f.Name) // 原始名保留给下载
	assert.Equal(t, "application/pdf", f.MIME)
	assert.True(t, strings.HasPrefix(filepath.Base(f.Path), "file-"))
	assert.True(t, strings.HasSuffix(f.Path, ".pdf"))

	got, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), got)
}

func TestSaveUploadRejectsType(t *testing.T) {
	s := testStore(t)

	_, err := s.SaveUpload(multipartFile(t, "payload.exe", "application/octet-stream", []byte("x")))
	assert.ErrorIs(t, err, ErrFileType)

	// 扩展名对但 MIME 不对也拒绝
	_, err = s.SaveUpload(multipartFile(t, "fake.pdf", "text/html", []byte("x")))
	assert.ErrorIs(t, err, ErrFileType)
}

func TestAllowed(t *testing.T) {
	assert.True(t, allowed(".pdf", "application/pdf"))
	assert.True(t, allowed(".docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.True(t, allowed(".jpg", "image/jpeg"))
	assert.True(t, allowed(".png", "IMAGE/PNG"))
	assert.False(t, allowed(".exe", "application/octet-stream"))
	assert.False(t, allowed(".pdf", "text/html"))
}

func TestSaveGeneratedPNG(t *testing.T) {
	s := testStore(t)
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	f, err := s.SaveGeneratedPNG(dataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.MIME)
	assert.True(t, strings.HasPrefix(filepath.Base(f.Path), "generated-notice-"))

	got, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	// 裸 base64（无 data URL 前缀）同样接受
	f, err = s.SaveGeneratedPNG(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.FileExists(t, f.Path)

	_, err = s.SaveGeneratedPNG("data:image/png;base64,!!!bad!!!")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	s := testStore(t)

	path := filepath.Join(s.Root(), "x.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, s.Remove(path))
	assert.False(t, s.Exists(path))

	// 不存在不算错，空路径是 no-op
	assert.NoError(t, s.Remove(path))
	assert.NoError(t, s.Remove(""))
}
