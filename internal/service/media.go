package service

import "strings"

// mediaURL joins a stored media path onto the public media prefix.
// Absolute URLs are returned untouched and an empty path stays empty.
func mediaURL(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
