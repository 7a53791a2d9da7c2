package domain

import "time"

// File records an uploaded image: the original name, the stored key and the
// public URL handed back to the editor.
type File struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID       uint64    `gorm:"column:user_id;index" json:"user_id"`
	OriginalName string    `gorm:"column:original_name;type:varchar(255)" json:"original_name"`
	StoredName   string    `gorm:"column:stored_name;type:varchar(255)" json:"stored_name"`
	MimeType     string    `gorm:"column:mime_type;type:varchar(100)" json:"mime_type"`
	FileSize     int64     `gorm:"column:file_size" json:"file_size"`
	URL          string    `gorm:"column:url;type:varchar(500)" json:"url"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (File) TableName() string { return "files" }

// UploadResponse is what the editor receives after a successful upload.
type UploadResponse struct {
	URL    string `json:"url"`
	FileID string `json:"file_id"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Type   string `json:"type"`
	Mock   bool   `json:"mock,omitempty"`
}
