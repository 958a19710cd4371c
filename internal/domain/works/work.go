package works

import "time"

// ImageBucket is the blob storage bucket holding work images. Every
// Work.ImageURL points at exactly one blob in this bucket.
const ImageBucket = "works-images"

type Work struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title string  `gorm:"not null" json:"title"`
	Year  *string `json:"year,omitempty"`

	// ImageURL is the public URL of the single associated image. Required
	// at display time; may be empty only between row update and image URL
	// availability.
	ImageURL string `gorm:"column:image_url" json:"image_url"`

	// Details are free-text bullet points shown on the detail page.
	Details []string `gorm:"serializer:json" json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
