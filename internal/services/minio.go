package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/minio/minio-go/v7"

	"storefront_back_end/internal/database"
)

// UploadObject stores an image stream under objectName in the product bucket
// and returns its relative path as recorded on the product.
func UploadObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := database.MinIO.PutObject(
		ctx,
		os.Getenv("MINIO_BUCKET"),
		objectName,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("minio upload failed: %w", err)
	}

	return "/uploads/" + objectName, nil
}

// RemoveObject deletes a stored image given its relative "/uploads/..." path.
func RemoveObject(ctx context.Context, imagePath string) error {
	key := objectKey(imagePath)
	return database.MinIO.RemoveObject(ctx, os.Getenv("MINIO_BUCKET"), key, minio.RemoveObjectOptions{})
}

// GenerateSignedURL returns a presigned GET URL for a stored image path.
func GenerateSignedURL(ctx context.Context, imagePath string, expiry time.Duration) (string, error) {
	key := objectKey(imagePath)

	signed, err := database.MinIO.PresignedGetObject(
		ctx,
		os.Getenv("MINIO_BUCKET"),
		key,
		expiry,
		url.Values{},
	)
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}

func objectKey(imagePath string) string {
	const prefix = "/uploads/"
	if len(imagePath) > len(prefix) && imagePath[:len(prefix)] == prefix {
		return imagePath[len(prefix):]
	}
	return imagePath
}
