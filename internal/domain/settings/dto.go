package settings

// SaveRequest carries the global settings form.
type SaveRequest struct {
	UploadFolder  string `json:"upload_folder" binding:"required"`
	ArchiveFolder string `json:"archive_folder"`
	Username      string `json:"username"`
	Password      string `json:"password"`
}
