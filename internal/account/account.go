// Package account answers account-level relationship questions: who follows
// an artist, what an address follows, and what it owns.
//
// Every entry point degrades to an empty result on failure; account pages
// render empty states, never error banners, for partial data.
package account

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fanbase-labs/pythia/internal/chain"
	"github.com/fanbase-labs/pythia/internal/decode"
	"github.com/fanbase-labs/pythia/internal/entities"
	"github.com/fanbase-labs/pythia/internal/membership"
	"github.com/fanbase-labs/pythia/internal/projector"
	"github.com/fanbase-labs/pythia/internal/table"
	"github.com/fanbase-labs/pythia/internal/txscan"
)

var log = logrus.WithField("package", "account")

// Aggregator composes the scanner, projector and membership resolver over
// one contract address.
type Aggregator struct {
	c        chain.Client
	p        *projector.Projector
	m        *membership.Resolver
	w        *table.Walker
	s        *txscan.Scanner
	contract string
}

// New creates an aggregator for the given contract.
func New(c chain.Client, s *txscan.Scanner, contract string) *Aggregator {
	return &Aggregator{
		c:        c,
		p:        projector.New(c),
		m:        membership.New(c),
		w:        table.New(c),
		s:        s,
		contract: contract,
	}
}

// Summary is the account-level view of an address.
type Summary struct {
	IsArtist  bool
	Followers []string
	Following []entities.CommunityInfo
}

// Communities groups the community relationships of an address.
type Communities struct {
	Owned           []entities.CommunityInfo
	Subscribed      []entities.CommunityInfo
	TierMemberships []entities.TierMembership
}

func (a *Aggregator) artistCapType() string {
	return a.contract + "::artist::ArtistCap"
}

func (a *Aggregator) artistCommunitiesType() string {
	return a.contract + "::artist::ArtistCommunities"
}

func (a *Aggregator) tierMembershipType() string {
	return a.contract + "::tier_seal::TierMembership"
}

// IsArtist reports whether the address holds the artist capability object.
func (a *Aggregator) IsArtist(ctx context.Context, address string) bool {
	objs, err := a.c.GetOwnedObjects(ctx, address, &chain.OwnedFilter{StructType: a.artistCapType()}, 1)
	if err != nil {
		log.WithError(err).WithField("address", address).Debug("failed to probe artist capability")
		return false
	}

	return len(objs) > 0
}

// Account resolves the full account summary. Followers are only resolved
// for artists; the two branches run concurrently.
func (a *Aggregator) Account(ctx context.Context, address string) Summary {
	out := Summary{IsArtist: a.IsArtist(ctx, address)}

	gr, gctx := errgroup.WithContext(ctx)
	gr.Go(func() error {
		if out.IsArtist {
			out.Followers = a.Followers(gctx, address)
		}
		return nil
	})
	gr.Go(func() error {
		out.Following = a.Following(gctx, address)
		return nil
	})
	_ = gr.Wait()

	return out
}

// Communities resolves owned and subscribed communities plus tier
// memberships, concurrently.
func (a *Aggregator) Communities(ctx context.Context, address string) Communities {
	var out Communities

	gr, gctx := errgroup.WithContext(ctx)
	gr.Go(func() error {
		out.Owned = a.OwnedCommunities(gctx, address)
		return nil
	})
	gr.Go(func() error {
		out.Subscribed = a.Following(gctx, address)
		return nil
	})
	gr.Go(func() error {
		out.TierMemberships = a.TierMemberships(gctx, address)
		return nil
	})
	_ = gr.Wait()

	return out
}

// Followers unions the member sets of all communities the artist owns. A
// non-artist address has no owned-communities index and yields an empty set.
func (a *Aggregator) Followers(ctx context.Context, artist string) []string {
	indexes, err := a.c.GetOwnedObjects(ctx, artist, &chain.OwnedFilter{StructType: a.artistCommunitiesType()}, 0)
	if err != nil {
		log.WithError(err).WithField("address", artist).Debug("failed to fetch owned-communities index")
		return nil
	}

	set := make(map[string]struct{})
	for _, id := range a.communityIDs(ctx, indexes) {
		obj, err := a.c.GetObject(ctx, id)
		if err != nil {
			log.WithError(err).WithField("community", id).Debug("skip community")
			continue
		}

		handle := decode.HandleID(obj.Fields["members"])
		if handle == "" {
			continue
		}

		for _, m := range a.m.Members(ctx, handle) {
			set[m] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for addr := range set {
		out = append(out, addr)
	}
	sort.Strings(out)

	return out
}

// Following projects the communities the address joined or subscribed to,
// recovered from its transaction history.
func (a *Aggregator) Following(ctx context.Context, address string) []entities.CommunityInfo {
	ids, err := a.s.Scan(ctx, address, txscan.MembershipCalls())
	if err != nil {
		log.WithError(err).WithField("address", address).Warn("relationship scan failed")
		return nil
	}

	return a.p.Summaries(ctx, ids)
}

// OwnedCommunities walks the address's owned-communities index and projects
// each referenced community into a summary.
func (a *Aggregator) OwnedCommunities(ctx context.Context, address string) []entities.CommunityInfo {
	indexes := a.ownedIndexes(ctx, address)
	if len(indexes) == 0 {
		return nil
	}

	return a.p.Summaries(ctx, a.communityIDs(ctx, indexes))
}

// ownedIndexes locates the address's ArtistCommunities objects. Stores
// differ in which query filters they index, so three strategies are tried
// in order, each only when the previous one yields nothing: filter by
// struct type, filter by package plus type substring, unfiltered scan plus
// type substring.
func (a *Aggregator) ownedIndexes(ctx context.Context, address string) []*chain.Object {
	objs, err := a.c.GetOwnedObjects(ctx, address, &chain.OwnedFilter{StructType: a.artistCommunitiesType()}, 0)
	if err == nil && len(objs) > 0 {
		return objs
	}

	objs, err = a.c.GetOwnedObjects(ctx, address, &chain.OwnedFilter{Package: a.contract}, 50)
	if err == nil {
		if objs = filterByType(objs, "ArtistCommunities"); len(objs) > 0 {
			return objs
		}
	}

	objs, err = a.c.GetOwnedObjects(ctx, address, nil, 50)
	if err != nil {
		log.WithError(err).WithField("address", address).Debug("failed to scan owned objects")
		return nil
	}

	return filterByType(objs, "ArtistCommunities")
}

// communityIDs walks the id-collections of the given index objects.
func (a *Aggregator) communityIDs(ctx context.Context, indexes []*chain.Object) []string {
	var ids []string

	for _, obj := range indexes {
		handle := decode.HandleID(obj.Fields["community_ids"])
		if handle == "" {
			continue
		}

		err := a.w.ForEach(ctx, handle, func(e chain.Entry, o *chain.Object) {
			if id := entryValueID(o); id != "" {
				ids = append(ids, id)
			}
		})
		if err != nil {
			log.WithError(err).WithField("handle", handle).Debug("failed to walk community ids")
		}
	}

	return ids
}

// TierMemberships lists the viewer's tier membership credentials.
func (a *Aggregator) TierMemberships(ctx context.Context, address string) []entities.TierMembership {
	objs, err := a.c.GetOwnedObjects(ctx, address, &chain.OwnedFilter{StructType: a.tierMembershipType()}, 0)
	if err != nil {
		log.WithError(err).WithField("address", address).Debug("failed to fetch tier memberships")
		return nil
	}

	out := make([]entities.TierMembership, 0, len(objs))
	for _, o := range objs {
		out = append(out, entities.TierMembership{
			ID:   o.ID,
			Tier: int(decode.Int64(o.Fields["tier"])),
		})
	}

	return out
}

func filterByType(objs []*chain.Object, tag string) []*chain.Object {
	out := objs[:0]
	for _, o := range objs {
		if strings.Contains(o.Type, tag) {
			out = append(out, o)
		}
	}

	return out
}

// entryValueID extracts an object id from an id-collection entry value,
// stored either under "value" or as the entry's own id.
func entryValueID(o *chain.Object) string {
	v := o.Fields["value"]
	if v == nil {
		v = o.Fields["id"]
	}

	if s, ok := v.(string); ok && strings.HasPrefix(s, "0x") {
		return s
	}

	return decode.HandleID(v)
}
