package helper

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

// fileHeader membangun *multipart.FileHeader seperti yang diterima controller.
func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("document", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["document"][0]
}

func TestUploadDocument_ImageBecomesWebP(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/documents/")

	url, err := UploadDocument(context.Background(), store, fileHeader(t, "Surat Panggilan.png", pngBytes(t, 2000, 1000)), "disciplinary-actions")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/documents/disciplinary-actions/surat-panggilan_"), url)
	assert.True(t, strings.HasSuffix(url, ".webp"), url)

	p := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/documents/")))
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1600, cfg.Width)
	assert.Equal(t, 800, cfg.Height)

	require.NoError(t, store.DeleteByPublicURL(context.Background(), url))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, store.DeleteByPublicURL(context.Background(), url))
	assert.Error(t, store.DeleteByPublicURL(context.Background(), "https://elsewhere/x.webp"))
}

func TestUploadDocument_PDFKeptAsIs(t *testing.T) {
	mock := &MockBlobService{}
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF")

	url, err := UploadDocument(context.Background(), mock, fileHeader(t, "berita acara.pdf", pdf), "docs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "mock://docs/berita-acara_"), url)
	assert.Equal(t, "application/pdf", mock.Objects[url])
}

func TestUploadDocument_Rejections(t *testing.T) {
	mock := &MockBlobService{}
	ctx := context.Background()

	tests := []struct {
		name string
		fh   *multipart.FileHeader
		code int
	}{
		{"missing", nil, fiber.StatusBadRequest},
		{"text file", fileHeader(t, "catatan.txt", []byte("hello")), fiber.StatusUnsupportedMediaType},
		{"broken image", fileHeader(t, "foto.png", []byte("not a png at all")), fiber.StatusUnsupportedMediaType},
		{"too large", fileHeader(t, "besar.pdf", bytes.Repeat([]byte("a"), MaxDocumentSize+1)), fiber.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UploadDocument(ctx, mock, tt.fh, "docs")
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.code, fe.Code)
		})
	}
	assert.Empty(t, mock.Objects)
}

func TestLocalStore_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/documents")

	url, err := store.Put(context.Background(), "../../etc/evil.pdf", []byte("x"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/documents/etc/evil.pdf", url)
	_, err = os.Stat(filepath.Join(dir, "etc", "evil.pdf"))
	assert.NoError(t, err)

	_, err = store.Put(context.Background(), "/", []byte("x"), "")
	assert.Error(t, err)
}

func TestSlugifyAndKeys(t *testing.T) {
	assert.Equal(t, "surat-panggilan-1", slugify(" Surat Panggilan_1 "))
	assert.Equal(t, "file", slugify("استدعاء"))
	assert.Equal(t, "a/b.webp", mustKey(t, "https://bucket.oss-ap.aliyuncs.com/a/b.webp"))
	_, err := ExtractKeyFromPublicURL("https://bucket-only")
	assert.Error(t, err)
}

func mustKey(t *testing.T, u string) string {
	k, err := ExtractKeyFromPublicURL(u)
	require.NoError(t, err)
	return k
}
