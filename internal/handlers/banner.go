package handlers

import (
	"errors"
	"log"
	"net/http"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/models"
	"saarthi/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	maxBannerImageSize = 10 << 20  // 10MB
	maxBannerVideoSize = 100 << 20 // 100MB
)

// UploadBanner stores a marketing creative on Cloudinary and records it
func UploadBanner(c *gin.Context) {
	advisorID := auth.AdvisorID(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		handleError(c, http.StatusBadRequest, "Banner file is required", err)
		return
	}
	defer file.Close()

	kind := models.BannerKind(c.DefaultPostForm("kind", string(models.BannerImage)))
	if kind != models.BannerImage && kind != models.BannerVideo {
		handleError(c, http.StatusBadRequest, "Kind must be image or video", errors.New("invalid banner kind"))
		return
	}

	imageService, err := services.NewImageService()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Image service unavailable", err)
		return
	}

	maxSize := int64(maxBannerImageSize)
	if kind == models.BannerVideo {
		maxSize = maxBannerVideoSize
	}
	if err := imageService.ValidateUploadSize(file, maxSize); err != nil {
		handleError(c, http.StatusBadRequest, "File is too large", err)
		return
	}

	publicID, secureURL, err := imageService.UploadBanner(file, header.Filename, advisorID, kind)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to upload banner", err)
		return
	}

	banner := models.BannerAsset{
		AdvisorID: advisorID,
		Kind:      kind,
		Title:     c.PostForm("title"),
		PublicID:  publicID,
		SecureURL: secureURL,
	}

	db := database.GetDB()
	if err := db.Create(&banner).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to save banner", err)
		return
	}

	c.JSON(http.StatusCreated, banner)
}

// GetBanners lists the advisor's uploaded creatives
func GetBanners(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var banners []models.BannerAsset
	if err := db.Where("advisor_id = ?", advisorID).Order("created_at DESC").Find(&banners).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch banners", err)
		return
	}

	c.JSON(http.StatusOK, banners)
}

// DeleteBanner removes a creative from Cloudinary and the database
func DeleteBanner(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var banner models.BannerAsset
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("banner_id"), advisorID).First(&banner).Error; err != nil {
		handleError(c, http.StatusNotFound, "Banner not found", err)
		return
	}

	imageService, err := services.NewImageService()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Image service unavailable", err)
		return
	}
	if err := imageService.DeleteAsset(banner.PublicID); err != nil {
		// The row still goes; a stray remote asset beats a dangling record
		log.Printf("Warning: Failed to delete remote asset %s: %v", banner.PublicID, err)
	}

	if err := db.Delete(&banner).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete banner", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
}
