package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"

	"github.com/industrahub/industrahub-backend/pkg/config"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
)

type fakeObjectStore struct {
	objects map[string][]byte
	types   map[string]string
	failOn  string
	signed  []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjectStore) Upload(_ context.Context, objectName, contentType string, body io.Reader) (string, error) {
	if f.failOn != "" && strings.Contains(objectName, f.failOn) {
		return "", fmt.Errorf("simulated upload failure")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.objects[objectName] = data
	f.types[objectName] = contentType
	return objectName, nil
}

func (f *fakeObjectStore) PublicURL(objectName string) string {
	return "https://storage.example.com/" + objectName
}

func (f *fakeObjectStore) SignedURL(objectName string, _ time.Duration) (string, error) {
	f.signed = append(f.signed, objectName)
	return "https://storage.example.com/" + objectName + "?signature=test", nil
}

func testMediaConfig() config.MediaConfig {
	return config.MediaConfig{
		MaxUploadMB:       1,
		MaxImages:         3,
		ImageMaxDimension: 64,
		ThumbMaxDimension: 32,
		ImageQuality:      80,
	}
}

func newMediaService(t *testing.T, store *fakeObjectStore, accessMode string) Service {
	t.Helper()
	svc, err := NewService(store, testMediaConfig(), config.GCSConfig{DownloadURLExpiry: time.Hour}, accessMode)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF")
}

func TestNewServiceRejectsUnknownAccessMode(t *testing.T) {
	_, err := NewService(newFakeObjectStore(), testMediaConfig(), config.GCSConfig{}, "open")
	if err == nil {
		t.Fatal("expected error for unknown access mode")
	}
}

func TestUploadProductMediaStoresEveryPart(t *testing.T) {
	store := newFakeObjectStore()
	svc := newMediaService(t, store, config.GCSAccessModePublic)

	img := Upload{Filename: "a.png", Data: pngBytes(t, 20, 20)}
	thumb := Upload{Filename: "t.png", Data: pngBytes(t, 10, 10)}
	pdf := Upload{Filename: "spec.pdf", Data: pdfBytes()}

	result, err := svc.UploadProductMedia(context.Background(), ProductMediaInput{
		Images:    []Upload{img, img},
		Thumbnail: &thumb,
		PDF:       &pdf,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.ImageURLs) != 2 {
		t.Fatalf("expected 2 image urls, got %d", len(result.ImageURLs))
	}
	if result.ThumbnailURL == nil || result.PDFURL == nil {
		t.Fatal("expected thumbnail and pdf urls")
	}
	for _, url := range result.ImageURLs {
		if !strings.HasPrefix(url, "https://storage.example.com/products/") {
			t.Fatalf("unexpected url: %s", url)
		}
		if !strings.HasSuffix(url, ".jpg") {
			t.Fatalf("expected re-encoded jpeg key, got %s", url)
		}
	}

	for key, contentType := range store.types {
		if strings.HasSuffix(key, ".jpg") && contentType != "image/jpeg" {
			t.Fatalf("expected image/jpeg for %s, got %s", key, contentType)
		}
		if strings.HasSuffix(key, ".pdf") && contentType != "application/pdf" {
			t.Fatalf("expected application/pdf for %s, got %s", key, contentType)
		}
	}
}

func TestUploadProductMediaSignedMode(t *testing.T) {
	store := newFakeObjectStore()
	svc := newMediaService(t, store, config.GCSAccessModeSigned)

	img := Upload{Filename: "a.png", Data: pngBytes(t, 8, 8)}
	result, err := svc.UploadProductMedia(context.Background(), ProductMediaInput{Images: []Upload{img}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.ImageURLs) != 1 || !strings.Contains(result.ImageURLs[0], "signature=") {
		t.Fatalf("expected signed url, got %v", result.ImageURLs)
	}
	if len(store.signed) != 1 {
		t.Fatalf("expected one sign call, got %d", len(store.signed))
	}
}

func TestUploadProductMediaAggregatesValidationProblems(t *testing.T) {
	svc := newMediaService(t, newFakeObjectStore(), config.GCSAccessModePublic)

	bad := Upload{Filename: "notes.txt", Data: []byte("plain text, not an image")}
	empty := Upload{Filename: "empty.png"}

	_, err := svc.UploadProductMedia(context.Background(), ProductMediaInput{
		Images: []Upload{bad, empty},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	problems := multierr.Errors(errors.Unwrap(typed))
	if len(problems) != 2 {
		t.Fatalf("expected both problems reported, got %d: %v", len(problems), problems)
	}
}

func TestUploadProductMediaEnforcesImageCap(t *testing.T) {
	svc := newMediaService(t, newFakeObjectStore(), config.GCSAccessModePublic)

	img := Upload{Filename: "a.png", Data: pngBytes(t, 4, 4)}
	_, err := svc.UploadProductMedia(context.Background(), ProductMediaInput{
		Images: []Upload{img, img, img, img},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for too many images, got %v", err)
	}
}

func TestUploadProductMediaAbortsOnUploadFailure(t *testing.T) {
	store := newFakeObjectStore()
	store.failOn = "02.jpg"
	svc := newMediaService(t, store, config.GCSAccessModePublic)

	img := Upload{Filename: "a.png", Data: pngBytes(t, 4, 4)}
	_, err := svc.UploadProductMedia(context.Background(), ProductMediaInput{
		Images: []Upload{img, img, img},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	// the first blob is written before the failure and stays behind
	if len(store.objects) != 1 {
		t.Fatalf("expected 1 stored blob, got %d", len(store.objects))
	}
}

func TestUploadCV(t *testing.T) {
	store := newFakeObjectStore()
	svc := newMediaService(t, store, config.GCSAccessModePublic)

	url, err := svc.UploadCV(context.Background(), Upload{Filename: "cv.pdf", Data: pdfBytes()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(url, "cvs/") || !strings.HasSuffix(url, ".pdf") {
		t.Fatalf("unexpected cv url: %s", url)
	}

	t.Run("non-pdf is rejected", func(t *testing.T) {
		_, err := svc.UploadCV(context.Background(), Upload{Filename: "cv.docx", Data: []byte("just words")})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("empty file is rejected", func(t *testing.T) {
		_, err := svc.UploadCV(context.Background(), Upload{Filename: "cv.pdf"})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestReencodeImageDownscales(t *testing.T) {
	large := pngBytes(t, 200, 100)

	out, err := reencodeImage(large, 50, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 25 {
		t.Fatalf("expected 50x25 output, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	t.Run("small images keep their size", func(t *testing.T) {
		out, err := reencodeImage(pngBytes(t, 30, 20), 50, 80)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		decoded, _, err := image.Decode(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("decoding output: %v", err)
		}
		if decoded.Bounds().Dx() != 30 || decoded.Bounds().Dy() != 20 {
			t.Fatalf("expected untouched dimensions, got %v", decoded.Bounds())
		}
	})
}
