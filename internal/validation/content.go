// Package validation holds content rules for user-submitted text.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPostLength caps post and comment content.
	MaxPostLength = 1000
	// MaxMessageLength caps direct-message content.
	MaxMessageLength = 2000
	// MaxBioLength caps the profile bio.
	MaxBioLength = 500
)

// PostContent validates post text. A post may be text-only or image-only,
// so empty content is allowed when hasImage is set.
func PostContent(content string, hasImage bool) error {
	content = strings.TrimSpace(content)
	if content == "" && !hasImage {
		return fmt.Errorf("post must have content or an image")
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return fmt.Errorf("post content must be at most %d characters", MaxPostLength)
	}
	return nil
}

// CommentContent validates comment text.
func CommentContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("comment content is required")
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return fmt.Errorf("comment content must be at most %d characters", MaxPostLength)
	}
	return nil
}

// MessageContent validates direct-message text.
func MessageContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("message content is required")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return fmt.Errorf("message content must be at most %d characters", MaxMessageLength)
	}
	return nil
}

// Bio validates the profile bio.
func Bio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return fmt.Errorf("bio must be at most %d characters", MaxBioLength)
	}
	return nil
}
