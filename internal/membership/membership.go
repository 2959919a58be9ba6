// Package membership determines whether an address belongs to a community.
package membership

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fanbase-labs/pythia/internal/chain"
	"github.com/fanbase-labs/pythia/internal/decode"
	"github.com/fanbase-labs/pythia/internal/table"
)

var log = logrus.WithField("package", "membership")

// Resolver answers membership questions against the chain. All checks are
// fail-closed: any resolution failure reads as "not a member".
type Resolver struct {
	c chain.Client
	w *table.Walker
}

// New creates a resolver over the given client.
func New(c chain.Client) *Resolver {
	return &Resolver{
		c: c,
		w: table.New(c),
	}
}

// Members returns the addresses keyed in a member collection. Keys that do
// not decode to an address are dropped; a listing failure yields an empty
// set.
func (r *Resolver) Members(ctx context.Context, handle string) []string {
	entries, err := r.w.Entries(ctx, handle)
	if err != nil {
		log.WithError(err).WithField("handle", handle).Debug("failed to list members")
		return nil
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if addr := addressFromKey(e); addr != "" {
			out = append(out, addr)
		}
	}

	return out
}

// IsMember reports whether address is the community's creator or appears in
// its member collection. Addresses compare case-insensitively.
func (r *Resolver) IsMember(ctx context.Context, communityID, address string) bool {
	if address == "" {
		return false
	}

	obj, err := r.c.GetObject(ctx, communityID)
	if err != nil {
		log.WithError(err).WithField("community", communityID).Debug("failed to fetch community")
		return false
	}

	if strings.EqualFold(decode.String(obj.Fields["creator"]), address) {
		return true
	}

	handle := decode.HandleID(obj.Fields["members"])
	if handle == "" {
		return false
	}

	for _, m := range r.Members(ctx, handle) {
		if strings.EqualFold(m, address) {
			return true
		}
	}

	return false
}

// addressFromKey recovers an address from an entry key, which may be a bare
// string, a typed name with a string value, or a typed name with a nested
// id struct.
func addressFromKey(e chain.Entry) string {
	if s, ok := e.Key.(string); ok && strings.HasPrefix(s, "0x") {
		return s
	}

	switch v := e.KeyValue.(type) {
	case string:
		if strings.HasPrefix(v, "0x") {
			return v
		}
	case map[string]interface{}:
		if id, ok := v["id"].(string); ok && strings.HasPrefix(id, "0x") {
			return id
		}
	}

	return ""
}
