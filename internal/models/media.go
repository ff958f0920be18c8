package models

// ImageUploadResponse is returned by POST /api/upload/image.
type ImageUploadResponse struct {
	URL string `json:"url"`
}

// AllowedImageExtensions lists the file extensions accepted for review images.
var AllowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}
