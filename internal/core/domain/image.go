package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ImageRef turns user input into the opaque image URI stored on an item.
// Input that already carries a URI scheme is kept as is; anything else is
// treated as a local path and converted to an absolute file:// URI.
// Blank input returns nil, meaning "no image".
func ImageRef(input string) (*string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if u, err := url.Parse(input); err == nil && len(u.Scheme) > 1 {
		return &input, nil
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("%w: image path %q: %w", ErrValidationRejected, input, err)
	}
	uri := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	return &uri, nil
}
