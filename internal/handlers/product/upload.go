package product

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"storefront_back_end/internal/apierror"
	"storefront_back_end/internal/services"
)

const (
	MaxImageSize  = 5 * 1024 * 1024 // 5 MB, same cap the storefront always had
	MaxImageCount = 5
)

var allowedImageTypes = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// ValidateImageFiles checks every uploaded file before anything is written:
// image extension AND declared content type, per-file size cap, count cap.
func ValidateImageFiles(files []*multipart.FileHeader) error {
	if len(files) > MaxImageCount {
		return apierror.New(apierror.Validation,
			fmt.Sprintf("At most %d images per request", MaxImageCount))
	}

	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !allowedImageTypes[ext] {
			return apierror.New(apierror.Validation, "Only image files are allowed")
		}
		if !allowedContentTypes[f.Header.Get("Content-Type")] {
			return apierror.New(apierror.Validation, "Only image files are allowed")
		}
		if f.Size > MaxImageSize {
			return apierror.New(apierror.Validation, "Image exceeds the 5MB limit")
		}
	}
	return nil
}

// storeImageFiles uploads validated files to MinIO and returns their
// recorded paths. Callers must run ValidateImageFiles first.
func storeImageFiles(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))

	for _, f := range files {
		src, err := f.Open()
		if err != nil {
			return nil, apierror.Wrap(apierror.BackendUnavailable, "upload read failed", err)
		}

		ext := strings.ToLower(filepath.Ext(f.Filename))
		objectName := fmt.Sprintf("products/%d%s", time.Now().UnixNano(), ext)

		path, err := services.UploadObject(ctx, objectName, src, f.Size, f.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			return nil, apierror.Wrap(apierror.BackendUnavailable, "image storage failed", err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}
