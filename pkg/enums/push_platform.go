package enums

import "fmt"

// PushPlatform maps to the platform column on push_tokens.
type PushPlatform string

const (
	PushPlatformWeb     PushPlatform = "web"
	PushPlatformIOS     PushPlatform = "ios"
	PushPlatformAndroid PushPlatform = "android"
)

var validPushPlatforms = []PushPlatform{
	PushPlatformWeb,
	PushPlatformIOS,
	PushPlatformAndroid,
}

// IsValid reports whether the value matches the canonical push platform enum.
func (p PushPlatform) IsValid() bool {
	for _, candidate := range validPushPlatforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePushPlatform converts the raw string to PushPlatform.
func ParsePushPlatform(value string) (PushPlatform, error) {
	for _, candidate := range validPushPlatforms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid push platform %q", value)
}
