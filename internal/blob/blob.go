// Package blob provides the durable key-value blob store backing the
// expense and user collections. Each key holds one serialized JSON
// document; every write replaces the whole value for its key.
package blob

import "errors"

// Well-known keys. They match the storage keys used by the web client
// so an exported collection round-trips unchanged.
const (
	ExpensesKey = "expense-tracker-expenses"
	UsersKey    = "expense-tracker-users"
)

// ErrKeyNotFound is returned by Get when no value exists for a key.
// An absent key is a normal negative result, not a fault.
var ErrKeyNotFound = errors.New("blob: key not found")

// Store is a durable key-value blob store. Set is all-or-nothing: on
// error the previously stored value for the key remains authoritative.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Notifier publishes change hints for keys after successful writes.
type Notifier interface {
	Subscribe(key string) (<-chan struct{}, func())
}
