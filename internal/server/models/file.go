package models

import "time"

// File is an uploaded file. Name is the unique key; EncryptedData holds the
// payload as base64 text exactly as the uploader sent it.
type File struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	EncryptedData string    `json:"encryptedData"`
	CreatedAt     time.Time `json:"created_at"`
}

// Clone returns an independent copy.
func (f *File) Clone() *File {
	c := *f
	return &c
}
