// Package models defines the client-side views of fileshare API payloads.
package models

import "time"

// File is one stored file as returned by the list and download endpoints.
type File struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	EncryptedData string    `json:"encryptedData"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// Upload is the body of an upload request. UserID may be left empty when
// the request carries a bearer token.
type Upload struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	EncryptedData string `json:"encryptedData"`
	UserID        string `json:"user_id,omitempty"`
}

type Activity struct {
	Type string    `json:"type"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

type ChatFile struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

type ChatMessage struct {
	ID      int64        `json:"id"`
	User    string       `json:"user"`
	Avatar  string       `json:"avatar"`
	Text    string       `json:"text"`
	Time    time.Time    `json:"time"`
	Sent    bool         `json:"sent"`
	File    *ChatFile    `json:"file,omitempty"`
	ReplyTo *ChatMessage `json:"replyTo,omitempty"`
}

// ChatDraft is an outgoing chat message. ReplyTo is a message id, 0 for none.
type ChatDraft struct {
	User    string    `json:"user"`
	Avatar  string    `json:"avatar"`
	Text    string    `json:"text"`
	Sent    bool      `json:"sent"`
	File    *ChatFile `json:"file,omitempty"`
	ReplyTo int64     `json:"replyTo,omitempty"`
}
