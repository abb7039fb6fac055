package config

import (
	"strings"

	"github.com/cropxr/drivectl/internal/errors"
)

// SecurityLevel classifies the sensitivity of a study's data.
type SecurityLevel string

const (
	LevelUnspecified  SecurityLevel = ""
	LevelPublic       SecurityLevel = "PUBLIC"
	LevelInternal     SecurityLevel = "INTERNAL"
	LevelConfidential SecurityLevel = "CONFIDENTIAL"
	LevelRestricted   SecurityLevel = "RESTRICTED"
)

// Levels lists the recognized security levels in policy order.
func Levels() []SecurityLevel {
	return []SecurityLevel{LevelPublic, LevelInternal, LevelConfidential, LevelRestricted}
}

// ParseLevel parses a case-insensitive security level string.
func ParseLevel(s string) (SecurityLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PUBLIC":
		return LevelPublic, nil
	case "INTERNAL":
		return LevelInternal, nil
	case "CONFIDENTIAL":
		return LevelConfidential, nil
	case "RESTRICTED":
		return LevelRestricted, nil
	default:
		return LevelUnspecified, errors.InvalidLevel(s)
	}
}

// Description returns the canned explanation used in policy documents.
func (l SecurityLevel) Description() string {
	switch l {
	case LevelPublic:
		return "Data that can be freely shared with the public."
	case LevelInternal:
		return "Data that can be shared within the organization (CropXR) but not externally."
	case LevelRestricted:
		return "Sensitive data with limited access even within the organization."
	case LevelConfidential:
		return "Highly sensitive data with strictly controlled access and not listed in data catalogue."
	default:
		return "Not classified yet."
	}
}

func (l SecurityLevel) String() string {
	if l == LevelUnspecified {
		return "[SELECT ONE: PUBLIC / INTERNAL / CONFIDENTIAL / RESTRICTED]"
	}
	return string(l)
}
