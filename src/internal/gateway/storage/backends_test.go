package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinioObjectURL(t *testing.T) {
	u, err := NewMinioUploader(MinioConfig{Endpoint: "minio.local:9000", AccessKey: "a", SecretKey: "b", Bucket: "proofs"})
	require.NoError(t, err)
	assert.Equal(t, "http://minio.local:9000/proofs/paymentbank-ab.png", u.objectURL("paymentbank-ab.png"))

	u, err = NewMinioUploader(MinioConfig{Endpoint: "minio.local:9000", Bucket: "proofs", UseSSL: true, PublicURL: "https://cdn.example.test/proofs/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.test/proofs/paymentwise-cd.jpg", u.objectURL("paymentwise-cd.jpg"))
}

func TestCloudinaryRequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryUploader(CloudinaryConfig{CloudName: "demo"})
	assert.Error(t, err)

	u, err := NewCloudinaryUploader(CloudinaryConfig{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "tour"})
	require.NoError(t, err)
	assert.Equal(t, "tour", u.folder)
}
