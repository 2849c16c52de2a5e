// file: internals/helpers/oss/blob_service.go
package helper

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"disiplinku_backend/internals/configs"
	"disiplinku_backend/internals/constants"
)

const MaxDocumentSize = 5 * 1024 * 1024

// BlobService: abstraksi storage dokumen (OSS / disk lokal / mock).
type BlobService interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

// NewBlobService memilih backend dari DOCUMENT_STORAGE.
func NewBlobService(cfg *configs.Config) (BlobService, error) {
	if cfg.DocumentStorage == "oss" {
		svc, err := NewOSSService(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey, cfg.OSSBucket, "documents")
		if err != nil {
			return nil, err
		}
		return svc, nil
	}
	return NewLocalStore(cfg.DocumentDir, cfg.DocumentBaseURL), nil
}

/* =======================================================================
   Upload dokumen (gambar → webp, pdf apa adanya)
======================================================================= */

// UploadDocument mengembalikan public URL dokumen yang tersimpan.
// Gambar (jpg/png/webp) dikonversi ke webp; PDF disimpan apa adanya.
func UploadDocument(ctx context.Context, store BlobService, fh *multipart.FileHeader, dir string) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File dokumen wajib diunggah")
	}
	if fh.Size > MaxDocumentSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran dokumen maksimal 5MB")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxDocumentSize+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran dokumen maksimal 5MB")
	}
	if len(data) == 0 {
		return "", fiber.NewError(fiber.StatusBadRequest, "File dokumen kosong")
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	sniffed := http.DetectContentType(head)
	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))

	var (
		key string
		ct  string
	)
	switch constants.DetectDocumentKind(fh.Filename, sniffed) {
	case constants.DocumentImage:
		out, err := ConvertToWebP(data, fh.Filename, DefaultWebPOptions())
		if err != nil {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Gambar tidak bisa diproses (pakai jpg/png/webp)")
		}
		data, ct, key = out, "image/webp", buildObjectKey(dir, base+".webp")
	case constants.DocumentPDF:
		ct, key = "application/pdf", buildObjectKey(dir, base+".pdf")
	default:
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Format dokumen tidak didukung (pakai jpg/png/webp/pdf)")
	}

	return store.Put(ctx, key, data, ct)
}

/* =======================================================================
   Misc utils
======================================================================= */

func buildObjectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	ts := time.Now().UTC().Format("20060102_150405")

	key := fmt.Sprintf("%s_%s_%s%s", slugify(base), ts, randHex(3), ext)
	if d := strings.Trim(dir, "/"); d != "" {
		key = d + "/" + key
	}
	return key
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// --------------------------------------------------
// Helper kecil untuk controller
// --------------------------------------------------

// IsMultipart menilai request multipart/form-data
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

var defaultDocumentFields = []string{"document", "file"}

// GetDocumentFile mencari file dari beberapa kemungkinan field form.
func GetDocumentFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gunakan multipart/form-data")
	}
	names := fieldNames
	if len(names) == 0 {
		names = defaultDocumentFields
	}
	for _, fn := range names {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "File dokumen wajib diunggah")
}

// --------------------------------------------------
// Mock untuk unit test
// --------------------------------------------------

// MockBlobService: tanpa Fn → simpan di memori.
type MockBlobService struct {
	PutFn               func(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPublicURLFn func(ctx context.Context, publicURL string) error

	mu      sync.Mutex
	Objects map[string]string // url → content type
	Deleted []string
}

func (m *MockBlobService) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.PutFn != nil {
		return m.PutFn(ctx, key, data, contentType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Objects == nil {
		m.Objects = map[string]string{}
	}
	url := "mock://" + key
	m.Objects[url] = contentType
	return url, nil
}

func (m *MockBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if m.DeleteByPublicURLFn != nil {
		return m.DeleteByPublicURLFn(ctx, publicURL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, publicURL)
	m.Deleted = append(m.Deleted, publicURL)
	return nil
}
