package domain

import "context"

// FileStore abstracts raw file byte storage for profile photos.
// Implementations exist for a local directory, S3 and SQLite BLOBs.
type FileStore interface {
	// Save writes data under key, replacing any existing object.
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}
