// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/soutech/shop-backend/internal/config"
	"github.com/soutech/shop-backend/internal/models"
)

const (
	productImageFolder = "products"
	localURLPrefix     = "/uploads"
)

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// StorageService stores product images in S3, or under the local upload
// directory when no AWS credentials are configured.
type StorageService struct {
	s3Client s3iface.S3API
	products *ProductService
	cfg      *config.StorageConfig
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type ImageUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

func NewStorageService(cfg *config.StorageConfig, products *ProductService) (*StorageService, error) {
	if cfg.AccessKeyID == "" {
		return &StorageService{products: products, cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewStorageServiceWithClient(cfg, products, s3.New(sess)), nil
}

func NewStorageServiceWithClient(cfg *config.StorageConfig, products *ProductService, client s3iface.S3API) *StorageService {
	return &StorageService{s3Client: client, products: products, cfg: cfg}
}

// UsesS3 reports whether uploads go to the bucket.
func (s *StorageService) UsesS3() bool {
	return s.s3Client != nil
}

// UploadProductImage validates an image, stores it and points the
// product's image_url at it.
func (s *StorageService) UploadProductImage(ctx context.Context, productID uint, upload ImageUpload) (*models.Product, *UploadResult, error) {
	if _, err := s.products.GetProduct(productID); err != nil {
		return nil, nil, err
	}

	data, contentType, err := s.readImage(upload)
	if err != nil {
		return nil, nil, err
	}

	key := generateObjectKey(productImageFolder, upload.Filename)

	var result *UploadResult
	if s.s3Client != nil {
		result, err = s.uploadToS3(ctx, data, key, contentType)
	} else {
		result, err = s.uploadToLocal(data, key, contentType)
	}
	if err != nil {
		return nil, nil, internalError("failed to store image", err)
	}

	product, err := s.products.SetImageURL(productID, result.URL)
	if err != nil {
		return nil, nil, err
	}
	return product, result, nil
}

func (s *StorageService) readImage(upload ImageUpload) ([]byte, string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !isAllowedExtension(ext) {
		return nil, "", NewError(KindValidation, fmt.Sprintf("file type %s is not allowed", ext), nil)
	}

	if s.cfg.MaxImageSize > 0 && upload.Size > s.cfg.MaxImageSize {
		return nil, "", NewError(KindValidation, fmt.Sprintf("file size %d bytes exceeds maximum allowed size %d bytes", upload.Size, s.cfg.MaxImageSize), nil)
	}

	reader := upload.Body
	if s.cfg.MaxImageSize > 0 {
		reader = io.LimitReader(upload.Body, s.cfg.MaxImageSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", internalError("failed to read file", err)
	}
	if s.cfg.MaxImageSize > 0 && int64(len(data)) > s.cfg.MaxImageSize {
		return nil, "", NewError(KindValidation, "file exceeds maximum allowed size", nil)
	}

	if !isValidImage(data) {
		return nil, "", NewError(KindValidation, "invalid image file", nil)
	}

	return data, http.DetectContentType(data), nil
}

func (s *StorageService) uploadToS3(ctx context.Context, data []byte, key, contentType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(data []byte, key, contentType string) (*UploadResult, error) {
	target := filepath.Join(s.cfg.LocalDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      path.Join(localURLPrefix, key),
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) getS3URL(key string) string {
	if s.cfg.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.cfg.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.S3Bucket, s.cfg.Region, key)
}

func generateObjectKey(folder, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s_%s%s", folder, timestamp, uuid.New().String()[:8], ext)
}

func isAllowedExtension(ext string) bool {
	for _, allowed := range allowedImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// isValidImage checks the file signature for JPEG, PNG, GIF or WebP.
func isValidImage(b []byte) bool {
	switch {
	case len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF:
		return true
	case len(b) >= 8 && bytes.Equal(b[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}):
		return true
	case len(b) >= 6 && (string(b[:6]) == "GIF87a" || string(b[:6]) == "GIF89a"):
		return true
	case len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP":
		return true
	}
	return false
}
