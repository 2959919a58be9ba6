// Package entities contains main entities of service. All of them are
// read-only projections reconstructed per-query from remote chain state;
// none is mutated after projection.
package entities

// Community is a creator-owned social space with posts, members and
// tier-priced follow options.
type Community struct {
	ID             string
	Name           string
	Description    string
	ArtistBio      string
	Image          string
	Creator        string
	MemberCount    int
	TierRegistryID string
	Tiers          []TierPrice
	Posts          []Post
	ViewerIsMember bool
}

// CommunityInfo is the lightweight community summary used in lists and
// relationship graphs.
type CommunityInfo struct {
	ID          string
	Name        string
	Description string
	Creator     string
}

// TierPrice is one subscription tier and its price in mist.
type TierPrice struct {
	Tier      int
	PriceMist uint64
}

// Post ...
type Post struct {
	ObjectID    string
	PostID      int64
	Author      string
	ContentType int
	Content     string
	ContentKey  string
	TimestampMs int64
	LikedBy     []string
	Comments    []Comment
}

// LikeCount is derived from the liked-by set.
func (p Post) LikeCount() int {
	return len(p.LikedBy)
}

// TierGated reports whether the post's body is withheld from non-members,
// signaled by a non-empty content key.
func (p Post) TierGated() bool {
	return p.ContentKey != ""
}

// Comment ...
type Comment struct {
	Author      string
	Content     string
	TimestampMs int64
}

// Poll is a community poll. Votes is parallel to Options; only an unclosed
// poll accepts votes.
type Poll struct {
	PollID   int64
	Question string
	Options  []string
	Votes    []int64
	Closed   bool
}

// TierMembership is a viewer-owned membership credential.
type TierMembership struct {
	ID   string
	Tier int
}

// FeedItemKind tags the variants of a feed item.
type FeedItemKind string

const (
	// FeedPost ...
	FeedPost FeedItemKind = "post"
	// FeedPoll ...
	FeedPoll FeedItemKind = "poll"
)

// FeedOrigin identifies the community a feed item came from.
type FeedOrigin struct {
	CommunityID      string
	CommunityName    string
	CommunityCreator string
}

// FeedItem is a tagged union of a post or a poll annotated with its origin.
// Exactly one of Post and Poll is set, matching Kind.
type FeedItem struct {
	Kind   FeedItemKind
	Origin FeedOrigin
	Post   *Post
	Poll   *Poll
}
