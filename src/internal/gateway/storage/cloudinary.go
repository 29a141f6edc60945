package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cfg CloudinaryConfig) (*CloudinaryUploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("storage: cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("storage: init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: cfg.Folder}, nil
}

// Upload keys the asset by suggestedPath without its extension; the folder
// part of the key becomes the Cloudinary folder.
func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte, contentType, suggestedPath string) (string, error) {
	publicID := strings.TrimSuffix(path.Base(suggestedPath), path.Ext(suggestedPath))
	folder := u.folder
	if dir := path.Dir(suggestedPath); dir != "." {
		folder = path.Join(folder, dir)
	}

	result, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		Overwrite:    api.Bool(false),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("storage: cloudinary upload %s: %w", suggestedPath, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("storage: cloudinary upload %s: %s", suggestedPath, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: cloudinary returned no url for %s", suggestedPath)
	}
	return result.SecureURL, nil
}
