// Package storage provides the key-value stores the session manager persists
// its state into. Values are opaque serialized strings; the manager owns the
// format.
package storage

// Store is a synchronous string key-value store. Get returns ok=false when
// the key holds nothing; that is not an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
