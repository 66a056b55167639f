package models

import "time"

type UploadStatus string

const (
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusReady      UploadStatus = "ready"
	UploadStatusRejected   UploadStatus = "rejected"
)

type Upload struct {
	ID          string
	UserID      *string
	ObjectKey   string
	URL         string
	ContentType string
	SizeBytes   int64
	Status      UploadStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
