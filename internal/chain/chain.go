// Package chain contains the remote object/ledger store interface.
package chain

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=./mock/chain.go -package=mock -source=chain.go

// ErrNotFound is returned when a requested object does not exist on chain.
var ErrNotFound = errors.New("object not found")

// Object is a raw on-chain object. Fields is the loosely-typed field set of
// the object's content; its values are decoded with the decode package.
type Object struct {
	ID     string
	Type   string
	Fields map[string]interface{}
}

// OwnedFilter narrows GetOwnedObjects results. At most one of StructType and
// Package is set; a nil filter requests an unfiltered scan.
type OwnedFilter struct {
	StructType string
	Package    string
}

// Entry is one key of a remote key-value collection. Key is the opaque field
// name echoed back to ReadCollectionEntry; KeyValue is the decoded key value
// (a sequence number or an address), nil when the store returned none.
type Entry struct {
	Key      interface{}
	KeyValue interface{}
	ObjectID string
}

// MoveCall is one call record of a programmable transaction. Arguments keep
// the wire shapes (input-slot references or literals) for the scanner to
// resolve.
type MoveCall struct {
	Package   string
	Module    string
	Function  string
	Arguments []interface{}
}

// Transaction is a normalized history entry. Inputs are the raw input slots
// referenced by call arguments; their encoding varies between the flattened
// and the legacy object-reference format.
type Transaction struct {
	Digest string
	Sender string
	Kind   string
	Inputs []interface{}
	Calls  []MoveCall
}

// TransactionPage is one page of an address's transaction history.
type TransactionPage struct {
	Items      []Transaction
	NextCursor string
	HasMore    bool
}

// Client provides read access to the remote object store.
type Client interface {
	GetObject(ctx context.Context, id string) (*Object, error)
	MultiGetObjects(ctx context.Context, ids []string) ([]*Object, error)
	GetOwnedObjects(ctx context.Context, owner string, filter *OwnedFilter, limit int) ([]*Object, error)
	ListCollectionEntries(ctx context.Context, handle string) ([]Entry, error)
	ReadCollectionEntry(ctx context.Context, handle string, key interface{}) (*Object, error)
	QueryTransactionHistory(ctx context.Context, sender string, limit int, cursor string) (*TransactionPage, error)
}
