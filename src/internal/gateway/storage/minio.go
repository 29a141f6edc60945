package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base the returned links are built on, e.g. a CDN.
	PublicURL string
}

type MinioUploader struct {
	client *minio.Client
	cfg    MinioConfig
}

func NewMinioUploader(cfg MinioConfig) (*MinioUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: init minio client: %w", err)
	}
	return &MinioUploader{client: client, cfg: cfg}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, data []byte, contentType, suggestedPath string) (string, error) {
	_, err := u.client.PutObject(ctx, u.cfg.Bucket, suggestedPath, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storage: put object %s: %w", suggestedPath, err)
	}
	return u.objectURL(suggestedPath), nil
}

func (u *MinioUploader) objectURL(key string) string {
	base := u.cfg.PublicURL
	if base == "" {
		scheme := "http"
		if u.cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, u.cfg.Endpoint, u.cfg.Bucket)
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(key)
}
