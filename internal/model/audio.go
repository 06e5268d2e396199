package model

import "time"

// AudioRecord is one uploaded MP3 and its metadata.
// URL is a self-contained data URL holding the file bytes; it is set once at
// ingestion and never changed. The JSON shape is the persisted layout.
type AudioRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
	Size       int64     `json:"size"`
}

// Timestamp returns t in UTC truncated to milliseconds, the precision
// uploadedAt is stored with.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
