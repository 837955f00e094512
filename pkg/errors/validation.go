package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxTranscriptBytes bounds the transcript accepted by the AI endpoint.
const MaxTranscriptBytes = 2 << 20

var nodeIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateNodeID checks that id is a lower-case slug usable inside
// connection keys. Characters used as key separators are rejected.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "node id too long (max 128 characters)")
	}
	if !nodeIDPattern.MatchString(id) {
		return New(ErrCodeInvalidInput, "node id %q must be lower-case letters, digits and dashes", id)
	}
	return nil
}

// ValidateTranscript rejects empty or oversized transcripts.
func ValidateTranscript(transcript string) error {
	if strings.TrimSpace(transcript) == "" {
		return New(ErrCodeInvalidInput, "Transcript is required.")
	}
	if len(transcript) > MaxTranscriptBytes {
		return New(ErrCodeInvalidInput, "transcript too large (max %d bytes)", MaxTranscriptBytes)
	}
	return nil
}

// ValidateDiagramID validates a stored diagram id. It rejects anything that
// could escape a storage directory or key prefix.
func ValidateDiagramID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "diagram id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "diagram id too long (max 64 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "diagram id contains control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00", ":"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "diagram id contains invalid characters: %q", pattern)
		}
	}
	return nil
}
