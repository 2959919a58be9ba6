// Package projector reconstructs typed domain entities from raw on-chain
// object graphs.
//
// Error handling follows a three-tier contract: a malformed entry inside a
// sub-collection is skipped, a failed sub-collection projection degrades to
// an empty collection, and only a failure on the root object itself is
// returned to the caller.
package projector

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fanbase-labs/pythia/internal/chain"
	"github.com/fanbase-labs/pythia/internal/decode"
	"github.com/fanbase-labs/pythia/internal/entities"
	"github.com/fanbase-labs/pythia/internal/membership"
	"github.com/fanbase-labs/pythia/internal/table"
)

var log = logrus.WithField("package", "projector")

// communityTypeTag marks community objects. The reported type carries
// package and generic decorations, so a substring match is used.
const communityTypeTag = "Community"

// Projector assembles domain entities from raw objects.
type Projector struct {
	c chain.Client
	w *table.Walker
	m *membership.Resolver
}

// New creates a projector over the given client.
func New(c chain.Client) *Projector {
	return &Projector{
		c: c,
		w: table.New(c),
		m: membership.New(c),
	}
}

// Community projects a full community entity. It fails when the root object
// is missing or its type tag does not match; every sub-collection degrades
// to empty instead of failing the entity.
func (p *Projector) Community(ctx context.Context, id, viewer string) (*entities.Community, error) {
	obj, err := p.c.GetObject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch community %s: %w", id, err)
	}

	if !strings.Contains(obj.Type, communityTypeTag) {
		return nil, fmt.Errorf("object %s has type %q: %w", id, obj.Type, chain.ErrNotFound)
	}

	f := obj.Fields
	c := entities.Community{
		ID:          id,
		Name:        decode.Bytes(f["name"]),
		Description: decode.Bytes(f["description"]),
		ArtistBio:   decode.Bytes(f["artist_description"]),
		Image:       decode.Bytes(f["image"]),
		Creator:     decode.String(f["creator"]),
	}

	if s, ok := f["tier_registry_id"].(string); ok {
		c.TierRegistryID = s
	} else {
		c.TierRegistryID = decode.HandleID(f["tier_registry_id"])
	}

	members := p.m.Members(ctx, decode.HandleID(f["members"]))
	c.MemberCount = len(members)

	if viewer != "" {
		c.ViewerIsMember = strings.EqualFold(c.Creator, viewer)
		for _, m := range members {
			if strings.EqualFold(m, viewer) {
				c.ViewerIsMember = true
				break
			}
		}
	}

	c.Tiers = p.Tiers(ctx, decode.HandleID(f["subscription_tiers"]))
	c.Posts = p.Posts(ctx, decode.HandleID(f["posts"]))

	return &c, nil
}

// CommunityPolls projects the polls of a community by id.
func (p *Projector) CommunityPolls(ctx context.Context, id string) ([]entities.Poll, error) {
	obj, err := p.c.GetObject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch community %s: %w", id, err)
	}

	if !strings.Contains(obj.Type, communityTypeTag) {
		return nil, fmt.Errorf("object %s has type %q: %w", id, obj.Type, chain.ErrNotFound)
	}

	return p.Polls(ctx, decode.HandleID(obj.Fields["polls"])), nil
}

// Summaries projects community ids into lightweight summaries, dropping ids
// that do not resolve to a community-typed object.
func (p *Projector) Summaries(ctx context.Context, ids []string) []entities.CommunityInfo {
	ids = dedup(ids)
	if len(ids) == 0 {
		return nil
	}

	objs, err := p.c.MultiGetObjects(ctx, ids)
	if err != nil {
		log.WithError(err).Warn("failed to fetch community summaries")
		return nil
	}

	out := make([]entities.CommunityInfo, 0, len(objs))
	for _, o := range objs {
		if o == nil || !strings.Contains(o.Type, communityTypeTag) {
			continue
		}

		out = append(out, entities.CommunityInfo{
			ID:          o.ID,
			Name:        decode.Bytes(o.Fields["name"]),
			Description: decode.Bytes(o.Fields["description"]),
			Creator:     decode.String(o.Fields["creator"]),
		})
	}

	return out
}

// Posts projects a posts collection, newest numeric id first. The order is
// by postId, not timestamp; existing clients rely on it.
func (p *Projector) Posts(ctx context.Context, handle string) []entities.Post {
	if handle == "" {
		return nil
	}

	var posts []entities.Post
	err := p.w.ForEach(ctx, handle, func(e chain.Entry, o *chain.Object) {
		post := entities.Post{
			ObjectID:    o.ID,
			PostID:      decode.Int64(e.KeyValue),
			Author:      decode.String(o.Fields["author"]),
			ContentType: int(decode.Int64(o.Fields["content_type"])),
			Content:     decode.Bytes(o.Fields["content"]),
			ContentKey:  decode.Bytes(o.Fields["content_key"]),
			TimestampMs: decode.Int64(o.Fields["timestamp_ms"]),
		}

		if likedBy, ok := o.Fields["liked_by"].([]interface{}); ok {
			for _, a := range likedBy {
				if addr := likerAddress(a); addr != "" {
					post.LikedBy = append(post.LikedBy, addr)
				}
			}
		}

		if h := decode.HandleID(o.Fields["comments"]); h != "" {
			post.Comments = p.Comments(ctx, h)
		}

		posts = append(posts, post)
	})
	if err != nil {
		log.WithError(err).WithField("handle", handle).Warn("failed to walk posts")
		return nil
	}

	sort.Slice(posts, func(i, j int) bool { return posts[i].PostID > posts[j].PostID })

	return posts
}

// Comments projects a comments collection, oldest first.
func (p *Projector) Comments(ctx context.Context, handle string) []entities.Comment {
	var comments []entities.Comment
	err := p.w.ForEach(ctx, handle, func(e chain.Entry, o *chain.Object) {
		comments = append(comments, entities.Comment{
			Author:      decode.String(o.Fields["author"]),
			Content:     decode.Bytes(o.Fields["content"]),
			TimestampMs: decode.Int64(o.Fields["timestamp_ms"]),
		})
	})
	if err != nil {
		log.WithError(err).WithField("handle", handle).Debug("failed to walk comments")
		return nil
	}

	sort.Slice(comments, func(i, j int) bool { return comments[i].TimestampMs < comments[j].TimestampMs })

	return comments
}

// Polls projects a polls collection, newest numeric id first.
func (p *Projector) Polls(ctx context.Context, handle string) []entities.Poll {
	if handle == "" {
		return nil
	}

	var polls []entities.Poll
	err := p.w.ForEach(ctx, handle, func(e chain.Entry, o *chain.Object) {
		optionCount := int(decode.Int64(o.Fields["option_count"]))

		poll := entities.Poll{
			PollID:   decode.Int64(e.KeyValue),
			Question: decode.Bytes(o.Fields["question"]),
			Closed:   decode.Bool(o.Fields["is_closed"]),
		}

		poll.Options = p.pollOptions(ctx, decode.HandleID(o.Fields["options"]))
		if len(poll.Options) == 0 {
			for i := 0; i < optionCount; i++ {
				poll.Options = append(poll.Options, fmt.Sprintf("Option %d", i+1))
			}
		}

		poll.Votes = p.pollVotes(ctx, decode.HandleID(o.Fields["votes"]), optionCount)

		polls = append(polls, poll)
	})
	if err != nil {
		log.WithError(err).WithField("handle", handle).Warn("failed to walk polls")
		return nil
	}

	sort.Slice(polls, func(i, j int) bool { return polls[i].PollID > polls[j].PollID })

	return polls
}

// Tiers projects a tier-price collection, ascending by tier number.
func (p *Projector) Tiers(ctx context.Context, handle string) []entities.TierPrice {
	var tiers []entities.TierPrice
	err := p.w.ForEach(ctx, handle, func(e chain.Entry, o *chain.Object) {
		tiers = append(tiers, entities.TierPrice{
			Tier:      int(decode.Int64(e.KeyValue)),
			PriceMist: decode.Uint64(o.Fields["value"]),
		})
	})
	if err != nil {
		log.WithError(err).WithField("handle", handle).Debug("failed to walk tiers")
		return nil
	}

	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Tier < tiers[j].Tier })

	return tiers
}

// pollOptions reads the option texts ordered by option index. An option
// whose entry cannot be read still occupies its slot as an empty string so
// the list stays parallel to the vote counts.
func (p *Projector) pollOptions(ctx context.Context, handle string) []string {
	if handle == "" {
		return nil
	}

	entries, err := p.w.Entries(ctx, handle)
	if err != nil {
		log.WithError(err).WithField("handle", handle).Debug("failed to list poll options")
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return decode.Int64(entries[i].KeyValue) < decode.Int64(entries[j].KeyValue)
	})

	options := make([]string, 0, len(entries))
	for _, e := range entries {
		o, err := p.w.Read(ctx, handle, e.Key)
		if err != nil || o == nil || o.Fields == nil {
			options = append(options, "")
			continue
		}

		options = append(options, decode.Bytes(o.Fields["value"]))
	}

	return options
}

// pollVotes reads vote counts into a slice parallel to the options.
func (p *Projector) pollVotes(ctx context.Context, handle string, optionCount int) []int64 {
	size := optionCount
	if size < 1 {
		size = 1
	}
	votes := make([]int64, size)

	if handle == "" || optionCount == 0 {
		return votes
	}

	err := p.w.ForEach(ctx, handle, func(e chain.Entry, o *chain.Object) {
		idx := int(decode.Int64(e.KeyValue))
		if idx < 0 || idx >= len(votes) {
			return
		}

		votes[idx] = decode.Int64(o.Fields["value"])
	})
	if err != nil {
		log.WithError(err).WithField("handle", handle).Debug("failed to walk poll votes")
	}

	return votes
}

// likerAddress accepts a plain address or an object wrapping it as {id}.
func likerAddress(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		if id, ok := t["id"].(string); ok {
			return id
		}
	}

	return ""
}

func dedup(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
