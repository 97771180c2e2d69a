package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SheetURLExpiry is how long a presigned sheet download link stays
// valid.
const SheetURLExpiry = 15 * time.Minute

// SheetArchive stores uploaded count-sheet files in S3-compatible
// storage so an import can be audited or re-run later.
type SheetArchive struct {
	client     *minio.Client
	bucketName string
	region     string
}

// NewSheetArchive creates a sheet archive over an S3 endpoint.
func NewSheetArchive(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool) (*SheetArchive, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &SheetArchive{
		client:     client,
		bucketName: bucketName,
		region:     region,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (a *SheetArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = a.client.MakeBucket(ctx, a.bucketName, minio.MakeBucketOptions{
			Region: a.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Store uploads a sheet file and returns its generated object key.
func (a *SheetArchive) Store(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("sheets/%s/%s%s",
		time.Now().UTC().Format("2006/01"),
		uuid.NewString(),
		path.Ext(filename),
	)

	_, err := a.client.PutObject(ctx, a.bucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload sheet: %w", err)
	}
	return key, nil
}

// PresignedURL generates a temporary download URL for an archived
// sheet.
func (a *SheetArchive) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := a.client.PresignedGetObject(ctx, a.bucketName, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// Delete removes an archived sheet.
func (a *SheetArchive) Delete(ctx context.Context, key string) error {
	if err := a.client.RemoveObject(ctx, a.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
