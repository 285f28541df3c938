// Package storage provides the key-value document store backing the clip,
// folder, and settings stores. Each key holds one JSON document, the same
// layout the original web app kept in browser storage.
package storage

// KV is a key-value document store. Get reports whether the key exists; an
// existing key with an empty value is still "absent data" to the stores.
type KV interface {
	// Get retrieves the document stored under key.
	Get(key string) (value string, ok bool, err error)

	// Set stores the document under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases any underlying resources.
	Close() error
}
