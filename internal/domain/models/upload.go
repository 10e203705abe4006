// internal/domain/models/upload.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoredFile records an uploaded binary (resumes). The payload lives on
// the file-storage backend; only the returned reference is kept here.
type StoredFile struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FileName string             `bson:"file_name" json:"fileName"`
	FileType string             `bson:"file_type" json:"fileType"`
	FilePath string             `bson:"file_path" json:"filePath"`

	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}
