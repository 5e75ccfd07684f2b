package forum

import (
	"strings"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// ContentType tags a post content block
type ContentType string

const (
	ContentTypeText    ContentType = "text"
	ContentTypeImage   ContentType = "image"
	ContentTypeVideo   ContentType = "video"
	ContentTypeFile    ContentType = "file"
	ContentTypeYouTube ContentType = "youtube"
)

// ContentBlock is one element of a post body. The Type tag decides which
// payload fields are meaningful: Text for text blocks, URL for media blocks,
// FileName additionally for file blocks.
type ContentBlock struct {
	Type     ContentType `json:"type"`
	Text     string      `json:"text,omitempty"`
	URL      string      `json:"url,omitempty"`
	FileName string      `json:"file_name,omitempty"`
}

// Validate checks the block's payload against its type tag
func (b ContentBlock) Validate() error {
	switch b.Type {
	case ContentTypeText:
		if strings.TrimSpace(b.Text) == "" {
			return shared.NewDomainError("VALIDATION_ERROR", "Text block cannot be empty")
		}
	case ContentTypeImage, ContentTypeVideo, ContentTypeYouTube:
		if strings.TrimSpace(b.URL) == "" {
			return shared.NewDomainError("VALIDATION_ERROR", "Media block requires a URL")
		}
	case ContentTypeFile:
		if strings.TrimSpace(b.URL) == "" {
			return shared.NewDomainError("VALIDATION_ERROR", "File block requires a URL")
		}
		if strings.TrimSpace(b.FileName) == "" {
			return shared.NewDomainError("VALIDATION_ERROR", "File block requires a file name")
		}
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Unknown content block type")
	}
	return nil
}

// ValidateContent validates a whole post body
func ValidateContent(blocks []ContentBlock) error {
	if len(blocks) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Post content cannot be empty")
	}
	for _, b := range blocks {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}
