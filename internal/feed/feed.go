// Package feed builds the unified chronological feed of a viewer's
// followed communities.
package feed

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fanbase-labs/pythia/internal/chain"
	"github.com/fanbase-labs/pythia/internal/decode"
	"github.com/fanbase-labs/pythia/internal/entities"
	"github.com/fanbase-labs/pythia/internal/projector"
	"github.com/fanbase-labs/pythia/internal/txscan"
)

var log = logrus.WithField("package", "feed")

// pollSortBase synthesizes a sort key for polls, which carry no timestamp.
// The resulting key is not dimensionally comparable to a post timestamp and
// places most polls ahead of older posts; kept as-is for compatibility with
// existing clients.
const pollSortBase = int64(2e15)

// Builder fans out over a viewer's followed communities and merges their
// posts and polls into one feed.
type Builder struct {
	c chain.Client
	p *projector.Projector
	s *txscan.Scanner
}

// New creates a builder.
func New(c chain.Client, s *txscan.Scanner) *Builder {
	return &Builder{
		c: c,
		p: projector.New(c),
		s: s,
	}
}

// Build returns the viewer's merged feed, newest first. A failure of the
// relationship scan yields an empty feed; a failure on a single community
// skips that community only.
func (b *Builder) Build(ctx context.Context, viewer string) []entities.FeedItem {
	if viewer == "" {
		return nil
	}

	ids, err := b.s.Scan(ctx, viewer, txscan.MembershipCalls())
	if err != nil {
		log.WithError(err).WithField("viewer", viewer).Warn("relationship scan failed")
		return nil
	}

	if len(ids) == 0 {
		return nil
	}

	slices := make([][]entities.FeedItem, len(ids))

	gr, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		gr.Go(func() error {
			slices[i] = b.communitySlice(gctx, id)
			return nil
		})
	}
	_ = gr.Wait()

	var items []entities.FeedItem
	for _, s := range slices {
		items = append(items, s...)
	}

	sort.SliceStable(items, func(i, j int) bool { return sortKey(items[i]) > sortKey(items[j]) })

	return items
}

func sortKey(it entities.FeedItem) int64 {
	if it.Kind == entities.FeedPost {
		return it.Post.TimestampMs
	}

	return pollSortBase - it.Poll.PollID
}

func (b *Builder) communitySlice(ctx context.Context, id string) []entities.FeedItem {
	obj, err := b.c.GetObject(ctx, id)
	if err != nil {
		log.WithError(err).WithField("community", id).Debug("skip community")
		return nil
	}

	if !strings.Contains(obj.Type, "Community") {
		return nil
	}

	origin := entities.FeedOrigin{
		CommunityID:      id,
		CommunityName:    decode.Bytes(obj.Fields["name"]),
		CommunityCreator: decode.String(obj.Fields["creator"]),
	}

	var items []entities.FeedItem

	for _, p := range b.p.Posts(ctx, decode.HandleID(obj.Fields["posts"])) {
		p := p
		items = append(items, entities.FeedItem{Kind: entities.FeedPost, Origin: origin, Post: &p})
	}

	for _, p := range b.p.Polls(ctx, decode.HandleID(obj.Fields["polls"])) {
		p := p
		items = append(items, entities.FeedItem{Kind: entities.FeedPoll, Origin: origin, Poll: &p})
	}

	return items
}
