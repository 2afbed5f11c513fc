package utils

import (
	"fmt"
	"strings"
)

// FileExtension returns the lower-cased substring after the final dot of a
// file name. A name without a dot has no extension.
func FileExtension(fileName string) (string, error) {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return "", fmt.Errorf("file name %q has no extension", fileName)
	}
	return strings.ToLower(fileName[idx+1:]), nil
}

// ImageContentType maps a file name's extension to its content type. Only
// png, jpg, jpeg and gif are accepted.
func ImageContentType(fileName string) (string, error) {
	ext, err := FileExtension(fileName)
	if err != nil {
		return "", err
	}

	switch ext {
	case "png":
		return "image/png", nil
	case "jpg", "jpeg":
		return "image/jpeg", nil
	case "gif":
		return "image/gif", nil
	default:
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}
}

// ObjectNameFromURL extracts the object name from a public object URL.
func ObjectNameFromURL(objectURL string) string {
	idx := strings.LastIndex(objectURL, "/")
	if idx < 0 {
		return objectURL
	}
	return objectURL[idx+1:]
}
