package config

import (
	"fmt"

	"tour-service/src/internal/gateway/storage"

	"github.com/spf13/viper"
)

func NewUploader(viper *viper.Viper) (storage.Uploader, error) {
	switch driver := viper.GetString("storage.driver"); driver {
	case "minio":
		return storage.NewMinioUploader(storage.MinioConfig{
			Endpoint:  viper.GetString("storage.minio.endpoint"),
			AccessKey: viper.GetString("storage.minio.access_key"),
			SecretKey: viper.GetString("storage.minio.secret_key"),
			Bucket:    viper.GetString("storage.minio.bucket"),
			UseSSL:    viper.GetBool("storage.minio.use_ssl"),
			PublicURL: viper.GetString("storage.minio.public_url"),
		})
	case "cloudinary":
		return storage.NewCloudinaryUploader(storage.CloudinaryConfig{
			CloudName: viper.GetString("storage.cloudinary.cloud_name"),
			APIKey:    viper.GetString("storage.cloudinary.api_key"),
			APISecret: viper.GetString("storage.cloudinary.api_secret"),
			Folder:    viper.GetString("storage.cloudinary.folder"),
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
