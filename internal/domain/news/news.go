package news

import "time"

// ImageBucket is the blob storage bucket holding news images.
const ImageBucket = "news-images"

type Item struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title string `gorm:"not null" json:"title"`

	// Date is free-form display text ("2024.12.15"), stored as-is.
	Date string `gorm:"not null" json:"date"`

	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`

	// Content holds the body paragraphs, re-derived from the edit textarea
	// on every save (see SplitParagraphs).
	Content []string `gorm:"serializer:json" json:"content,omitempty"`

	ImageURL *string `gorm:"column:image_url" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) TableName() string {
	return "news"
}
