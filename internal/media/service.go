package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/image/draw"

	"github.com/industrahub/industrahub-backend/pkg/config"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
)

// Upload is one in-memory file from a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

// ProductMediaInput bundles the media parts of a product submission.
type ProductMediaInput struct {
	Images         []Upload
	Video          *Upload
	PDF            *Upload
	Thumbnail      *Upload
	VideoThumbnail *Upload
}

// ProductMediaResult carries the stored URLs for a submission's media.
type ProductMediaResult struct {
	ImageURLs         []string
	VideoURL          *string
	PDFURL            *string
	ThumbnailURL      *string
	VideoThumbnailURL *string
}

// Service ingests uploaded media into object storage.
type Service interface {
	UploadProductMedia(ctx context.Context, input ProductMediaInput) (*ProductMediaResult, error)
	UploadCV(ctx context.Context, upload Upload) (string, error)
}

type objectStore interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error)
	PublicURL(objectName string) string
	SignedURL(objectName string, expiry time.Duration) (string, error)
}

type service struct {
	store      objectStore
	media      config.MediaConfig
	expiry     time.Duration
	accessMode string
}

// NewService constructs a media service instance.
func NewService(store objectStore, mediaCfg config.MediaConfig, gcsCfg config.GCSConfig, accessMode string) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if accessMode != config.GCSAccessModePublic && accessMode != config.GCSAccessModeSigned {
		return nil, fmt.Errorf("unknown gcs access mode %q", accessMode)
	}
	return &service{
		store:      store,
		media:      mediaCfg,
		expiry:     gcsCfg.DownloadURLExpiry,
		accessMode: accessMode,
	}, nil
}

// UploadProductMedia validates the whole batch up front, then uploads part by
// part. The first upload failure aborts the request; blobs already written
// are left behind.
func (s *service) UploadProductMedia(ctx context.Context, input ProductMediaInput) (*ProductMediaResult, error) {
	if err := s.validateBatch(input); err != nil {
		return nil, err
	}

	batch := uuid.NewString()
	result := &ProductMediaResult{}

	for i, img := range input.Images {
		processed, err := reencodeImage(img.Data, s.media.ImageMaxDimension, s.media.ImageQuality)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("decode image %d", i+1))
		}
		key := fmt.Sprintf("products/%s/images/%02d.jpg", batch, i+1)
		url, err := s.storeObject(ctx, key, "image/jpeg", processed)
		if err != nil {
			return nil, err
		}
		result.ImageURLs = append(result.ImageURLs, url)
	}

	if input.Thumbnail != nil {
		processed, err := reencodeImage(input.Thumbnail.Data, s.media.ThumbMaxDimension, s.media.ImageQuality)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode thumbnail")
		}
		url, err := s.storeObject(ctx, fmt.Sprintf("products/%s/thumbnail.jpg", batch), "image/jpeg", processed)
		if err != nil {
			return nil, err
		}
		result.ThumbnailURL = &url
	}

	if input.VideoThumbnail != nil {
		processed, err := reencodeImage(input.VideoThumbnail.Data, s.media.ThumbMaxDimension, s.media.ImageQuality)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode video thumbnail")
		}
		url, err := s.storeObject(ctx, fmt.Sprintf("products/%s/video-thumbnail.jpg", batch), "image/jpeg", processed)
		if err != nil {
			return nil, err
		}
		result.VideoThumbnailURL = &url
	}

	if input.Video != nil {
		contentType := sniffContentType(input.Video.Data)
		url, err := s.storeObject(ctx, fmt.Sprintf("products/%s/video%s", batch, extensionFor(contentType, input.Video.Filename)), contentType, input.Video.Data)
		if err != nil {
			return nil, err
		}
		result.VideoURL = &url
	}

	if input.PDF != nil {
		url, err := s.storeObject(ctx, fmt.Sprintf("products/%s/document.pdf", batch), "application/pdf", input.PDF.Data)
		if err != nil {
			return nil, err
		}
		result.PDFURL = &url
	}

	return result, nil
}

// UploadCV stores a job seeker CV. PDF only.
func (s *service) UploadCV(ctx context.Context, upload Upload) (string, error) {
	if len(upload.Data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cv file is empty")
	}
	if err := s.checkSize("cv", upload.Data); err != nil {
		return "", err
	}
	if ct := sniffContentType(upload.Data); ct != "application/pdf" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cv must be a pdf, got %s", ct))
	}
	return s.storeObject(ctx, fmt.Sprintf("cvs/%s.pdf", uuid.NewString()), "application/pdf", upload.Data)
}

// validateBatch collects every problem in the payload before any bytes leave
// the process, so the caller gets one complete validation response.
func (s *service) validateBatch(input ProductMediaInput) error {
	var errs error

	if s.media.MaxImages > 0 && len(input.Images) > s.media.MaxImages {
		errs = multierr.Append(errs, fmt.Errorf("at most %d images allowed, got %d", s.media.MaxImages, len(input.Images)))
	}
	for i, img := range input.Images {
		errs = multierr.Append(errs, s.validateImage(fmt.Sprintf("image %d", i+1), img))
	}
	if input.Thumbnail != nil {
		errs = multierr.Append(errs, s.validateImage("thumbnail", *input.Thumbnail))
	}
	if input.VideoThumbnail != nil {
		errs = multierr.Append(errs, s.validateImage("video thumbnail", *input.VideoThumbnail))
	}
	if input.Video != nil {
		if err := s.checkSize("video", input.Video.Data); err != nil {
			errs = multierr.Append(errs, err)
		} else if ct := sniffContentType(input.Video.Data); !strings.HasPrefix(ct, "video/") {
			errs = multierr.Append(errs, fmt.Errorf("video must be a video file, got %s", ct))
		}
	}
	if input.PDF != nil {
		if err := s.checkSize("pdf", input.PDF.Data); err != nil {
			errs = multierr.Append(errs, err)
		} else if ct := sniffContentType(input.PDF.Data); ct != "application/pdf" {
			errs = multierr.Append(errs, fmt.Errorf("pdf must be a pdf file, got %s", ct))
		}
	}

	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid media payload")
	}
	return nil
}

func (s *service) validateImage(label string, img Upload) error {
	if len(img.Data) == 0 {
		return fmt.Errorf("%s is empty", label)
	}
	if err := s.checkSize(label, img.Data); err != nil {
		return err
	}
	switch ct := sniffContentType(img.Data); ct {
	case "image/jpeg", "image/png":
		return nil
	default:
		return fmt.Errorf("%s must be jpeg or png, got %s", label, ct)
	}
}

func (s *service) checkSize(label string, data []byte) error {
	maxBytes := s.media.MaxUploadMB * 1024 * 1024
	if maxBytes > 0 && len(data) > maxBytes {
		return fmt.Errorf("%s exceeds the %dMB limit", label, s.media.MaxUploadMB)
	}
	return nil
}

func (s *service) storeObject(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if _, err := s.store.Upload(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "gcs: upload "+key)
	}
	if s.accessMode == config.GCSAccessModeSigned {
		url, err := s.store.SignedURL(key, s.expiry)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "gcs: sign "+key)
		}
		return url, nil
	}
	return s.store.PublicURL(key), nil
}

// reencodeImage decodes, scales down to fit maxDim, and re-encodes as JPEG.
// Images already inside the bound are re-encoded without scaling.
func reencodeImage(data []byte, maxDim, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxDim > 0 && (width > maxDim || height > maxDim) {
		scale := float64(maxDim) / float64(width)
		if height > width {
			scale = float64(maxDim) / float64(height)
		}
		dstW := int(float64(width) * scale)
		dstH := int(float64(height) * scale)
		if dstW < 1 {
			dstW = 1
		}
		if dstH < 1 {
			dstH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func sniffContentType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	return ct
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	}
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[idx:]
	}
	return ".bin"
}
