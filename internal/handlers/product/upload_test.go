package product

import (
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/apierror"
)

func imageHeader(filename, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: filename,
		Header:   h,
		Size:     size,
	}
}

func TestValidateImageFilesAccepts(t *testing.T) {
	files := []*multipart.FileHeader{
		imageHeader("front.jpg", "image/jpeg", 1024),
		imageHeader("back.PNG", "image/png", MaxImageSize),
		imageHeader("anim.gif", "image/gif", 50),
	}

	assert.NoError(t, ValidateImageFiles(files))
}

func TestValidateImageFilesRejectsExtension(t *testing.T) {
	err := ValidateImageFiles([]*multipart.FileHeader{
		imageHeader("malware.exe", "image/jpeg", 10),
	})

	requireValidation(t, err)
}

func TestValidateImageFilesRejectsContentType(t *testing.T) {
	err := ValidateImageFiles([]*multipart.FileHeader{
		imageHeader("sneaky.jpg", "application/octet-stream", 10),
	})

	requireValidation(t, err)
}

func TestValidateImageFilesRejectsOversize(t *testing.T) {
	err := ValidateImageFiles([]*multipart.FileHeader{
		imageHeader("huge.png", "image/png", MaxImageSize+1),
	})

	requireValidation(t, err)
}

func TestValidateImageFilesRejectsTooMany(t *testing.T) {
	var files []*multipart.FileHeader
	for i := 0; i < MaxImageCount+1; i++ {
		files = append(files, imageHeader("a.jpg", "image/jpeg", 10))
	}

	requireValidation(t, ValidateImageFiles(files))
}

func TestValidateImageFilesRejectsBeforeAnyWrite(t *testing.T) {
	// One bad file poisons the whole batch, good files included.
	err := ValidateImageFiles([]*multipart.FileHeader{
		imageHeader("fine.jpg", "image/jpeg", 10),
		imageHeader("bad.pdf", "application/pdf", 10),
	})

	requireValidation(t, err)
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.Validation, apiErr.Kind)
}
