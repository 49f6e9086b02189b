package entity

// UploadRequest carries an inline image as a data URL or plain base64.
type UploadRequest struct {
	Category string `json:"category" form:"category" binding:"required,oneof=avatars thumbnails"`
	Data     string `json:"data" form:"data"`
}

// UploadResponse points at a stored media object.
type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
