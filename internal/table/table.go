// Package table walks remote key-value collections ("tables") given their
// handle.
package table

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fanbase-labs/pythia/internal/chain"
)

var log = logrus.WithField("package", "table")

// Walker enumerates and dereferences collection entries.
type Walker struct {
	c chain.Client
}

// New creates a walker over the given client.
func New(c chain.Client) *Walker {
	return &Walker{c: c}
}

// Entries returns the keys of the collection, in store order. An empty
// handle yields an empty listing.
func (w *Walker) Entries(ctx context.Context, handle string) ([]chain.Entry, error) {
	if handle == "" {
		return nil, nil
	}

	entries, err := w.c.ListCollectionEntries(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries of %s: %w", handle, err)
	}

	return entries, nil
}

// Read dereferences one entry to its value object.
func (w *Walker) Read(ctx context.Context, handle string, key interface{}) (*chain.Object, error) {
	obj, err := w.c.ReadCollectionEntry(ctx, handle, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry of %s: %w", handle, err)
	}

	return obj, nil
}

// ForEach lists the collection and dereferences every entry, invoking f for
// each readable value. Unreadable or empty entries are skipped; a single bad
// entry never aborts the walk. A failure to list the collection itself is
// returned to the caller.
func (w *Walker) ForEach(ctx context.Context, handle string, f func(e chain.Entry, o *chain.Object)) error {
	entries, err := w.Entries(ctx, handle)
	if err != nil {
		return err
	}

	for _, e := range entries {
		o, err := w.Read(ctx, handle, e.Key)
		if err != nil || o == nil || o.Fields == nil {
			log.WithError(err).WithField("handle", handle).Debug("skip unreadable entry")
			continue
		}

		f(e, o)
	}

	return nil
}
