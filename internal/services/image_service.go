package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"saarthi/internal/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type ImageService struct {
	cld *cloudinary.Cloudinary
}

func NewImageService() (*ImageService, error) {
	// Get Cloudinary configuration from environment
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("missing Cloudinary configuration")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &ImageService{cld: cld}, nil
}

var bannerImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var bannerVideoTypes = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

// UploadBanner uploads an advisor's marketing creative to Cloudinary and
// returns its public ID and secure URL
func (s *ImageService) UploadBanner(file multipart.File, filename string, advisorID uint, kind models.BannerKind) (publicID, secureURL string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))

	resourceType := "image"
	switch kind {
	case models.BannerImage:
		if !bannerImageTypes[ext] {
			return "", "", fmt.Errorf("invalid image type: %s. Allowed types: jpg, jpeg, png, gif, webp", ext)
		}
	case models.BannerVideo:
		if !bannerVideoTypes[ext] {
			return "", "", fmt.Errorf("invalid video type: %s. Allowed types: mp4, webm, mov", ext)
		}
		resourceType = "video"
	default:
		return "", "", fmt.Errorf("unknown banner kind %q", kind)
	}

	base := strings.TrimSuffix(filepath.Base(filename), ext)

	uploadParams := uploader.UploadParams{
		Folder:       fmt.Sprintf("saarthi/banners/advisor_%d", advisorID),
		PublicID:     base,
		ResourceType: resourceType,
		UseFilename:  &[]bool{true}[0],
	}

	result, err := s.cld.Upload.Upload(context.Background(), file, uploadParams)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload banner: %w", err)
	}

	return result.PublicID, result.SecureURL, nil
}

// UploadAvatar uploads an advisor's profile photo, cropped to the face
func (s *ImageService) UploadAvatar(file multipart.File, filename string, advisorID uint) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !bannerImageTypes[ext] {
		return "", fmt.Errorf("invalid file type: %s. Allowed types: jpg, jpeg, png, gif, webp", ext)
	}

	publicID := fmt.Sprintf("avatars/advisor_%d", advisorID)

	uploadParams := uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "saarthi/avatars",
		Overwrite:      &[]bool{true}[0],
		ResourceType:   "image",
		Transformation: "c_fill,g_face,h_300,w_300/q_auto,f_auto",
	}

	result, err := s.cld.Upload.Upload(context.Background(), file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return result.SecureURL, nil
}

// DeleteAsset deletes an uploaded creative from Cloudinary
func (s *ImageService) DeleteAsset(publicID string) error {
	_, err := s.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	return err
}

// ValidateUploadSize validates the uploaded file stays under maxSize bytes
func (s *ImageService) ValidateUploadSize(file multipart.File, maxSize int64) error {
	// Reset file pointer
	file.Seek(0, 0)

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if int64(len(data)) > maxSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", len(data), maxSize)
	}

	// Reset file pointer for later use
	file.Seek(0, 0)

	return nil
}
