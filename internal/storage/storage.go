// Package storage publishes packaged artifacts to an object-storage backend.
package storage

import "context"

// Publisher uploads one local artifact under objectName and returns the
// destination URI. The pack command depends on this interface, not on a
// concrete backend.
type Publisher interface {
	Publish(ctx context.Context, localPath, objectName string) (string, error)
}
