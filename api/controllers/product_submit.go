package controllers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/industrahub/industrahub-backend/api/middleware"
	"github.com/industrahub/industrahub-backend/api/responses"
	mediasvc "github.com/industrahub/industrahub-backend/internal/media"
	productsvc "github.com/industrahub/industrahub-backend/internal/products"
	"github.com/industrahub/industrahub-backend/pkg/config"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

// CreateProduct handles the multipart submission form. Media is stored
// first; the listing row references the resulting URLs. Non-admin creators
// land in the moderation queue.
func CreateProduct(products productsvc.Service, media mediasvc.Service, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if products == nil || media == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role := enums.UserRole(middleware.RoleFromContext(r.Context()))

		maxBytes := int64(mediaCfg.MaxUploadMB) * 1024 * 1024
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes*int64(mediaCfg.MaxImages+3))
		}
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		input, err := parseProductForm(r, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mediaInput, err := collectProductMedia(r.MultipartForm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stored, err := media.UploadProductMedia(r.Context(), *mediaInput)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.ImageURLs = stored.ImageURLs
		input.VideoURL = stored.VideoURL
		input.PDFURL = stored.PDFURL
		input.ThumbnailURL = stored.ThumbnailURL
		input.VideoThumbnailURL = stored.VideoThumbnailURL

		product, err := products.Create(r.Context(), userID, role, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func parseProductForm(r *http.Request, role enums.UserRole) (*productsvc.CreateInput, error) {
	form := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }

	price, err := decimal.NewFromString(form("price"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	quantity := 0
	if raw := form("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quantity")
		}
	}

	condition, err := enums.ParseProductCondition(form("condition"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
	}

	productType, err := enums.ParseProductType(form("product_type"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_type")
	}

	input := &productsvc.CreateInput{
		Title:        form("title"),
		Description:  form("description"),
		Price:        price,
		Quantity:     quantity,
		Condition:    condition,
		ProductType:  productType,
		CategoryName: form("category"),
	}

	if raw := form("machine_type"); raw != "" {
		machineType, err := enums.ParseMachineType(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid machine_type")
		}
		input.MachineType = &machineType
	}

	if raw := form("specifications"); raw != "" {
		var specs map[string]any
		if err := json.Unmarshal([]byte(raw), &specs); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid specifications json")
		}
		input.Specifications = specs
	}

	// only admins may request an initial status
	if raw := form("status"); raw != "" && role.IsAdmin() {
		status, err := enums.ParseProductStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = status
	}

	return input, nil
}

func collectProductMedia(form *multipart.Form) (*mediasvc.ProductMediaInput, error) {
	input := &mediasvc.ProductMediaInput{}

	for _, header := range form.File["images"] {
		upload, err := bufferFilePart(header)
		if err != nil {
			return nil, err
		}
		input.Images = append(input.Images, *upload)
	}

	single := func(name string) (*mediasvc.Upload, error) {
		parts := form.File[name]
		if len(parts) == 0 {
			return nil, nil
		}
		return bufferFilePart(parts[0])
	}

	var err error
	if input.Video, err = single("video"); err != nil {
		return nil, err
	}
	if input.PDF, err = single("pdf"); err != nil {
		return nil, err
	}
	if input.Thumbnail, err = single("thumbnail"); err != nil {
		return nil, err
	}
	if input.VideoThumbnail, err = single("video_thumbnail"); err != nil {
		return nil, err
	}

	return input, nil
}

func bufferFilePart(header *multipart.FileHeader) (*mediasvc.Upload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open upload "+header.Filename)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read upload "+header.Filename)
	}

	return &mediasvc.Upload{Filename: header.Filename, Data: data}, nil
}
