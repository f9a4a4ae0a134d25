package entity

import "time"

// Media is an uploaded image. The bytes live in blob storage under StorageKey.
type Media struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Alt        string    `json:"alt,omitempty"`
	Caption    string    `json:"caption,omitempty"`
	Category   string    `json:"category,omitempty"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}
