package models

import "time"

// BannerKind distinguishes the creative types an advisor can upload
type BannerKind string

const (
	BannerImage BannerKind = "image"
	BannerVideo BannerKind = "video"
)

// BannerAsset represents a marketing creative uploaded to Cloudinary
type BannerAsset struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID uint       `gorm:"not null;index" json:"advisor_id"`
	Kind      BannerKind `gorm:"size:10;not null;default:'image'" json:"kind"`
	Title     string     `gorm:"size:100" json:"title"`
	PublicID  string     `gorm:"size:255;not null" json:"public_id"`
	SecureURL string     `gorm:"size:512;not null" json:"secure_url"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the BannerAsset model
func (BannerAsset) TableName() string {
	return "banner_asset"
}
