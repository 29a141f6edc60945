package storage

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/crypto/blake2b"
)

// Uploader stores a binary and returns a stable URL to it.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, suggestedPath string) (string, error)
}

var allowedProofTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
}

// DetectProofType sniffs the file content and returns its MIME type and
// extension when it is an accepted proof image. A declared content type, when
// present, must also be an accepted image.
func DetectProofType(data []byte, declared string) (string, string, error) {
	detected := mimetype.Detect(data)
	for mime, ext := range allowedProofTypes {
		if detected.Is(mime) {
			if declared != "" {
				if _, ok := allowedProofTypes[declared]; !ok {
					return "", "", fmt.Errorf("declared type %s is not an accepted image", declared)
				}
			}
			return detected.String(), ext, nil
		}
	}
	return "", "", fmt.Errorf("file type %s is not allowed, only jpeg, jpg and png", detected.String())
}

// ObjectKey names a proof by the digest of its content, so retrying the same
// upload targets the same object.
func ObjectKey(prefix string, data []byte, ext string) string {
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("%s-%s.%s", prefix, hex.EncodeToString(sum[:]), ext)
}
