package domain

import "time"

// StorageObject is one entry from a bucket listing.
type StorageObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}
