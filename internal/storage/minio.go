package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/config"
)

var ErrUnavailable = errors.New("object storage is not configured")

// Images stores product pictures in a MinIO bucket. A nil *Images degrades
// to ErrUnavailable, object storage being optional infrastructure.
type Images struct {
	client *minio.Client
	bucket string
}

// Connect returns nil (no error) when MINIO_ENDPOINT is unset.
func Connect(ctx context.Context) (*Images, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️  MINIO_ENDPOINT not set, image uploads disabled")
		return nil, nil
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %v", err)
	}

	bucket := config.Get("MINIO_BUCKET", "product-images")
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio bucket create: %v", err)
		}
		log.Println("🪣 Bucket created:", bucket)
	}

	log.Println("✅ Connected to MinIO:", endpoint)
	return &Images{client: client, bucket: bucket}, nil
}

// Upload stores the file under a fresh object name and returns that name.
func (s *Images) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s == nil {
		return "", ErrUnavailable
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := uuid.NewString() + "-" + file.Filename
	_, err = s.client.PutObject(ctx, s.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

// PresignedURL hands out a temporary download link for an object.
func (s *Images) PresignedURL(ctx context.Context, objectName string) (string, error) {
	if s == nil {
		return "", ErrUnavailable
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, 15*time.Minute, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
