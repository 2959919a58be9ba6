package server

import (
	"encoding/json"
	"net/http"

	"github.com/fanbase-labs/pythia/internal/account"
	"github.com/fanbase-labs/pythia/internal/entities"
)

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
}

// Community ...
// swagger:model
type Community struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	ArtistBio      string      `json:"artist_bio"`
	Image          string      `json:"image"`
	Creator        string      `json:"creator"`
	MemberCount    int         `json:"member_count"`
	TierRegistryID string      `json:"tier_registry_id,omitempty"`
	Tiers          []TierPrice `json:"tiers"`
	Posts          []Post      `json:"posts"`
	ViewerIsMember bool        `json:"viewer_is_member"`
}

// TierPrice ...
type TierPrice struct {
	Tier      int    `json:"tier"`
	PriceMist uint64 `json:"price_mist"`
}

// Post ...
type Post struct {
	ID          string    `json:"id"`
	PostID      int64     `json:"post_id"`
	Author      string    `json:"author"`
	ContentType int       `json:"content_type"`
	Content     string    `json:"content"`
	TierGated   bool      `json:"tier_gated"`
	CreatedAt   int64     `json:"created_at"`
	Likes       int       `json:"likes"`
	LikedBy     []string  `json:"liked_by"`
	Comments    []Comment `json:"comments"`
}

// Comment ...
type Comment struct {
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// Poll ...
type Poll struct {
	PollID   int64    `json:"poll_id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Votes    []int64  `json:"votes"`
	Closed   bool     `json:"closed"`
}

// CommunityInfo ...
type CommunityInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Creator     string `json:"creator"`
}

// TierMembership ...
type TierMembership struct {
	ID   string `json:"id"`
	Tier int    `json:"tier"`
}

// AccountResponse ...
// swagger:model
type AccountResponse struct {
	Address   string          `json:"address"`
	IsArtist  bool            `json:"is_artist"`
	Followers []string        `json:"followers"`
	Following []CommunityInfo `json:"following"`
}

// CommunitiesResponse ...
// swagger:model
type CommunitiesResponse struct {
	Owned           []CommunityInfo  `json:"owned"`
	Subscribed      []CommunityInfo  `json:"subscribed"`
	TierMemberships []TierMembership `json:"tier_memberships"`
}

// FeedItem ...
type FeedItem struct {
	Kind             string `json:"kind"`
	CommunityID      string `json:"community_id"`
	CommunityName    string `json:"community_name"`
	CommunityCreator string `json:"community_creator"`
	Post             *Post  `json:"post,omitempty"`
	Poll             *Poll  `json:"poll,omitempty"`
}

// FeedResponse ...
// swagger:model
type FeedResponse struct {
	Items []FeedItem `json:"items"`
}

func writeOK(w http.ResponseWriter, status int, v interface{}) {
	data, _ := json.Marshal(v)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeOK(w, status, Error{Error: message})
}

// toAPICommunity withholds gated post bodies from a non-member viewer.
func toAPICommunity(c *entities.Community) Community {
	out := Community{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		ArtistBio:      c.ArtistBio,
		Image:          c.Image,
		Creator:        c.Creator,
		MemberCount:    c.MemberCount,
		TierRegistryID: c.TierRegistryID,
		Tiers:          make([]TierPrice, 0, len(c.Tiers)),
		Posts:          make([]Post, 0, len(c.Posts)),
		ViewerIsMember: c.ViewerIsMember,
	}

	for _, t := range c.Tiers {
		out.Tiers = append(out.Tiers, TierPrice{Tier: t.Tier, PriceMist: t.PriceMist})
	}

	for i := range c.Posts {
		out.Posts = append(out.Posts, toAPIPost(&c.Posts[i], c.ViewerIsMember))
	}

	return out
}

func toAPIPost(p *entities.Post, member bool) Post {
	out := Post{
		ID:          p.ObjectID,
		PostID:      p.PostID,
		Author:      p.Author,
		ContentType: p.ContentType,
		Content:     p.Content,
		TierGated:   p.TierGated(),
		CreatedAt:   p.TimestampMs,
		Likes:       p.LikeCount(),
		LikedBy:     p.LikedBy,
		Comments:    make([]Comment, 0, len(p.Comments)),
	}

	if out.LikedBy == nil {
		out.LikedBy = []string{}
	}

	if p.TierGated() && !member {
		out.Content = ""
	}

	for _, c := range p.Comments {
		out.Comments = append(out.Comments, Comment{
			Author:    c.Author,
			Content:   c.Content,
			CreatedAt: c.TimestampMs,
		})
	}

	return out
}

func toAPIPoll(p *entities.Poll) Poll {
	out := Poll{
		PollID:   p.PollID,
		Question: p.Question,
		Options:  p.Options,
		Votes:    p.Votes,
		Closed:   p.Closed,
	}

	if out.Options == nil {
		out.Options = []string{}
	}
	if out.Votes == nil {
		out.Votes = []int64{}
	}

	return out
}

func toAPICommunityInfos(in []entities.CommunityInfo) []CommunityInfo {
	out := make([]CommunityInfo, 0, len(in))
	for _, v := range in {
		out = append(out, CommunityInfo{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			Creator:     v.Creator,
		})
	}

	return out
}

func toAPIPolls(in []entities.Poll) []Poll {
	out := make([]Poll, 0, len(in))
	for i := range in {
		out = append(out, toAPIPoll(&in[i]))
	}

	return out
}

func newAccountResponse(address string, s account.Summary) AccountResponse {
	out := AccountResponse{
		Address:   address,
		IsArtist:  s.IsArtist,
		Followers: s.Followers,
		Following: toAPICommunityInfos(s.Following),
	}

	if out.Followers == nil {
		out.Followers = []string{}
	}

	return out
}

func newCommunitiesResponse(c account.Communities) CommunitiesResponse {
	out := CommunitiesResponse{
		Owned:           toAPICommunityInfos(c.Owned),
		Subscribed:      toAPICommunityInfos(c.Subscribed),
		TierMemberships: make([]TierMembership, 0, len(c.TierMemberships)),
	}

	for _, m := range c.TierMemberships {
		out.TierMemberships = append(out.TierMemberships, TierMembership{ID: m.ID, Tier: m.Tier})
	}

	return out
}

func newFeedResponse(items []entities.FeedItem) FeedResponse {
	out := FeedResponse{Items: make([]FeedItem, 0, len(items))}

	for _, it := range items {
		v := FeedItem{
			Kind:             string(it.Kind),
			CommunityID:      it.Origin.CommunityID,
			CommunityName:    it.Origin.CommunityName,
			CommunityCreator: it.Origin.CommunityCreator,
		}

		switch {
		case it.Post != nil:
			// gated bodies never render in the feed; the follow set is
			// recovered from historical transactions and proves nothing
			// about current membership
			p := toAPIPost(it.Post, false)
			v.Post = &p
		case it.Poll != nil:
			p := toAPIPoll(it.Poll)
			v.Poll = &p
		}

		out.Items = append(out.Items, v)
	}

	return out
}
