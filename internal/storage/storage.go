package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrObjectNotFound is returned by archives that can tell a missing key apart.
var ErrObjectNotFound = errors.New("object not found in storage")

// SnapshotArchive stores serialized plan snapshots in object storage.
type SnapshotArchive interface {
	// PutSnapshot writes body as a JSON object under objectKey.
	PutSnapshot(ctx context.Context, objectKey string, body []byte) error

	// PresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	PresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// SnapshotKey is the object key of one saved plan version.
func SnapshotKey(userID, planID string, version int, id string) string {
	return fmt.Sprintf("plans/%s/%s/v%06d-%s.json", userID, planID, version, id)
}

// ExportKey is the object key of an on-demand export.
func ExportKey(userID, planID, id string) string {
	return fmt.Sprintf("exports/%s/%s/%s.json", userID, planID, id)
}
