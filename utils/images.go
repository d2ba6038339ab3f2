// utils/images.go
package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// EncodeDataURL wraps raw image bytes as the data URL the views render.
func EncodeDataURL(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a data URL into payload and MIME type. Raw base64
// without the data: prefix is accepted and assumed to be PNG.
func DecodeDataURL(s string) ([]byte, string, error) {
	mimeType := "image/png"
	payload := s
	if strings.HasPrefix(s, "data:") {
		rest := strings.TrimPrefix(s, "data:")
		semi := strings.Index(rest, ";base64,")
		if semi < 0 {
			return nil, "", errors.New("unsupported image encoding")
		}
		if rest[:semi] != "" {
			mimeType = rest[:semi]
		}
		payload = rest[semi+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding image payload: %w", err)
	}
	return data, mimeType, nil
}
