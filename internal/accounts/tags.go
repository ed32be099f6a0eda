package accounts

import (
	"strings"

	"github.com/atinyakov/accountkeeper/internal/models"
)

const (
	tagDelimiter = ";"
	tagSeparator = "; "
)

// ParseTags splits text on ';', trims each piece and drops empty ones.
// Blank input yields an empty, non-nil slice.
func ParseTags(text string) []models.Tag {
	tags := []models.Tag{}
	if strings.TrimSpace(text) == "" {
		return tags
	}
	for _, piece := range strings.Split(text, tagDelimiter) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		tags = append(tags, models.Tag{Text: piece})
	}
	return tags
}

// FormatTags joins tag texts with "; ".
func FormatTags(tags []models.Tag) string {
	texts := make([]string, len(tags))
	for i, t := range tags {
		texts[i] = t.Text
	}
	return strings.Join(texts, tagSeparator)
}
