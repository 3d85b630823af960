package models

import "time"

// Artifact is a stored report file. URL and ExpiresAt are only set once a
// signed URL has been minted and must not outlive ExpiresAt.
type Artifact struct {
	Bucket    string    `json:"-"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size,omitempty"`
	URL       string    `json:"url,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Credential is the caller credential forwarded by the upstream auth layer.
// Only its presence is checked here.
type Credential struct {
	Scheme string
	Token  string
}
