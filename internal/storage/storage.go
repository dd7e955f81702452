package storage

import "io"

// DocumentPrefix is the path prefix under which task documents are stored.
const DocumentPrefix = "tasks/documents/"

// DocumentStore is the boundary to the blob storage holding task documents.
// Record writes and document writes are not transactional with each other.
type DocumentStore interface {
	Save(path string, content io.Reader) error
	Delete(path string) error
}
