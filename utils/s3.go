package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	appcfg "github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var s3Client *s3.Client

// InitS3 sets up the S3 client. With no bucket configured the service runs in
// local-disk mode and uploads land under the configured upload directory.
func InitS3() {
	log := logger.L()

	if appcfg.App.S3Bucket == "" {
		log.Info("S3_BUCKET not set, storing uploads on local disk",
			zap.String("dir", appcfg.App.UploadDir))
		return
	}

	region := appcfg.App.AWSRegion
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		log.Fatal("Unable to load AWS config for S3", zap.Error(err))
	}
	s3Client = s3.NewFromConfig(cfg)
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.]+`)

// StoreImage persists raw image bytes under a fresh unique name and returns
// a dereferenceable URL.
func StoreImage(data []byte, filename, contentType string) (string, error) {
	name := fmt.Sprintf("%s-%s", uuid.New().String(), sanitizeFilename(filename, contentType))

	if s3Client == nil {
		return storeImageLocal(data, name)
	}

	key := "meals/" + name
	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(appcfg.App.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if cfURL := appcfg.App.CloudFrontURL; cfURL != "" {
		return fmt.Sprintf("%s/%s", cfURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		appcfg.App.S3Bucket, appcfg.App.AWSRegion, key), nil
}

// StoreBase64Image accepts a "data:<mime>;base64,<data>" URI.
func StoreBase64Image(base64Data string) (string, error) {
	data, contentType, err := DecodeImageDataURI(base64Data)
	if err != nil {
		return "", err
	}
	return StoreImage(data, "upload", contentType)
}

// DecodeImageDataURI splits and decodes a base64 image data URI.
func DecodeImageDataURI(base64Data string) ([]byte, string, error) {
	parts := strings.Split(base64Data, ",")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:image") {
		return nil, "", fmt.Errorf("invalid base64 image")
	}

	mediaType := strings.SplitN(parts[0], ":", 2)[1]    // "image/jpeg;base64"
	contentType := strings.SplitN(mediaType, ";", 2)[0] // "image/jpeg"

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return data, contentType, nil
}

func storeImageLocal(data []byte, name string) (string, error) {
	dir := appcfg.App.UploadDir
	if dir == "" {
		dir = "public/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return "/uploads/" + name, nil
}

func sanitizeFilename(filename, contentType string) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if ext == "" {
		ext = extensionForType(contentType)
		base += ext
	}
	return unsafeKeyChars.ReplaceAllString(base, "-")
}

func extensionForType(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ".jpg"
}
