package models

import "time"

// ChatFile describes a file attached to a chat message.
type ChatFile struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// ChatMessage is a stored chat message. ReplyTo is a snapshot of the
// message being answered, taken when the reply was sent.
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

// Clone returns a deep copy, including the attached file and reply snapshot.
func (m *ChatMessage) Clone() *ChatMessage {
	c := *m
	if m.File != nil {
		f := *m.File
		c.File = &f
	}
	if m.ReplyTo != nil {
		c.ReplyTo = m.ReplyTo.Clone()
	}
	return &c
}
