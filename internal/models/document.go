package models

import "time"

// Document is an attachment descriptor for one asset. Only the descriptor
// lives here; the bytes are stored by an external collaborator and referenced
// through StoragePath. OriginalName is unique per asset.
type Document struct {
	ID           int       `json:"id"`
	AssetID      int       `json:"asset_id"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type,omitempty"`
	SizeBytes    int64     `json:"size_bytes"`
	StoragePath  string    `json:"storage_path"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
