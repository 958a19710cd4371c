package news

import "github.com/KatsuoTomino/KoutaArtsite/internal/domain/news"

// editViewDTO is the admin edit-form shape: the row plus the content
// paragraphs joined with blank lines for the textarea.
type editViewDTO struct {
	news.Item
	ContentText string `json:"content_text"`
}
