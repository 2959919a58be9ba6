// Package txscan recovers implicit community relationships from an
// address's transaction history.
//
// The chain keeps no index of who joined or subscribed to a community, so
// the scanner replays recent transactions and pattern-matches call records
// against a fixed allow-list of call signatures, then resolves each match's
// first argument back to the community object it targeted.
package txscan

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fanbase-labs/pythia/internal/chain"
	"github.com/fanbase-labs/pythia/internal/decode"
)

var log = logrus.WithField("package", "txscan")

const programmableKind = "ProgrammableTransaction"

const (
	// DefaultPageSize ...
	DefaultPageSize = 100
	// DefaultMaxPages caps history scans to keep them bounded.
	DefaultMaxPages = 5
)

// Call names one allow-listed contract function, matched as both
// contract::module::function and module::function.
type Call struct {
	Module   string
	Function string
}

// MembershipCalls is the allow-list of calls that establish a follow/join
// relationship with a community.
func MembershipCalls() []Call {
	return []Call{
		{Module: "community", Function: "subscribe"},
		{Module: "community", Function: "subscribe_for_duration"},
		{Module: "community", Function: "join_community"},
	}
}

// Config ...
type Config struct {
	Contract string
	PageSize int
	MaxPages int
}

// Scanner pages through transaction histories.
type Scanner struct {
	c   chain.Client
	cfg Config
}

// New creates a scanner. Zero page size and page cap fall back to the
// defaults.
func New(c chain.Client, cfg Config) *Scanner {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}

	return &Scanner{c: c, cfg: cfg}
}

// Scan returns the deduplicated set of object identifiers targeted by the
// allow-listed calls in the address's recent history. The result is sorted,
// so equal histories produce equal sets. Entries with unrecognizable shapes
// are skipped; only a history fetch failure is returned.
func (s *Scanner) Scan(ctx context.Context, address string, calls []Call) ([]string, error) {
	ids := make(map[string]struct{})

	cursor := ""
	for page := 0; page < s.cfg.MaxPages; page++ {
		res, err := s.c.QueryTransactionHistory(ctx, address, s.cfg.PageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to query transaction history of %s: %w", address, err)
		}

		if len(res.Items) == 0 {
			break
		}

		for _, tx := range res.Items {
			// defensive: the store filters by sender already, but a
			// misattributed entry must not leak relationships
			if tx.Sender != address {
				continue
			}
			if tx.Kind != programmableKind {
				continue
			}

			for _, mc := range tx.Calls {
				if !s.matches(mc, calls) {
					continue
				}

				if id := resolveFirstArg(mc, tx.Inputs); id != "" {
					ids[id] = struct{}{}
				}
			}
		}

		cursor = res.NextCursor
		if cursor == "" || !res.HasMore {
			break
		}
	}

	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)

	log.WithField("address", address).WithField("communities", len(out)).Debug("history scan done")

	return out, nil
}

func (s *Scanner) matches(mc chain.MoveCall, calls []Call) bool {
	long := fmt.Sprintf("%s::%s::%s", mc.Package, mc.Module, mc.Function)
	short := fmt.Sprintf("%s::%s", mc.Module, mc.Function)

	for _, c := range calls {
		if long == fmt.Sprintf("%s::%s::%s", s.cfg.Contract, c.Module, c.Function) {
			return true
		}
		if short == fmt.Sprintf("%s::%s", c.Module, c.Function) {
			return true
		}
	}

	return false
}

// resolveFirstArg resolves a call's first argument, an input-slot reference,
// to the object identifier held in that slot.
func resolveFirstArg(mc chain.MoveCall, inputs []interface{}) string {
	if len(mc.Arguments) == 0 {
		return ""
	}

	idx := inputIndex(mc.Arguments[0])
	if idx < 0 || idx >= len(inputs) {
		return ""
	}

	return objectIDFromInput(inputs[idx])
}

// inputIndex accepts the two wire encodings of an input-slot reference: a
// structured {"Input": n} object or a bare integer.
func inputIndex(arg interface{}) int {
	switch a := arg.(type) {
	case map[string]interface{}:
		v, ok := a["Input"]
		if !ok {
			return -1
		}
		return int(decode.Int64(v))
	case float64:
		return int(a)
	}

	return -1
}

// objectIDFromInput accepts the flattened object reference
// ({"objectId": "0x..."}) and the legacy nested one
// ({"Object": {"Shared": {"objectId": "0x..."}}}).
func objectIDFromInput(inp interface{}) string {
	m, ok := inp.(map[string]interface{})
	if !ok {
		return ""
	}

	if id, ok := m["objectId"].(string); ok && strings.HasPrefix(id, "0x") {
		return id
	}

	if obj, ok := m["Object"].(map[string]interface{}); ok {
		if sh, ok := obj["Shared"].(map[string]interface{}); ok {
			if id, ok := sh["objectId"].(string); ok {
				return id
			}
		}
	}

	return ""
}
