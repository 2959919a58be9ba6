package projector

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbase-labs/pythia/internal/chain"
	"github.com/fanbase-labs/pythia/internal/chain/mock"
	"github.com/fanbase-labs/pythia/internal/entities"
)

var errTest = errors.New("test")

func expectCollection(c *mock.MockClient, handle string, objects map[string]*chain.Object, keyValues map[string]interface{}) {
	entries := make([]chain.Entry, 0, len(objects))
	for k := range objects {
		entries = append(entries, chain.Entry{Key: k, KeyValue: keyValues[k]})
	}

	c.EXPECT().ListCollectionEntries(gomock.Any(), handle).Return(entries, nil).AnyTimes()
	for k, o := range objects {
		c.EXPECT().ReadCollectionEntry(gomock.Any(), handle, k).Return(o, nil).AnyTimes()
	}
}

func TestProjector_Community(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	c.EXPECT().GetObject(gomock.Any(), "0xcomm").Return(&chain.Object{
		ID:   "0xcomm",
		Type: "0xpkg::community::Community",
		Fields: map[string]interface{}{
			"name":               []interface{}{float64(104), float64(105)}, // "hi"
			"description":        "desc",
			"artist_description": "bio",
			"image":              "https://img",
			"creator":            "0xcreator",
			"tier_registry_id":   "0xregistry",
			"members":            map[string]interface{}{"id": "0xmembers"},
			"subscription_tiers": map[string]interface{}{"id": "0xtiers"},
			"posts":              map[string]interface{}{"id": "0xposts"},
		},
	}, nil)

	c.EXPECT().ListCollectionEntries(gomock.Any(), "0xmembers").Return([]chain.Entry{
		{Key: "0xm1"},
		{Key: "0xm2"},
	}, nil)

	expectCollection(c, "0xtiers",
		map[string]*chain.Object{
			"2": {ID: "0xt2", Fields: map[string]interface{}{"value": "2000000000"}},
			"1": {ID: "0xt1", Fields: map[string]interface{}{"value": "1000000000"}},
		},
		map[string]interface{}{"1": float64(1), "2": float64(2)},
	)

	expectCollection(c, "0xposts",
		map[string]*chain.Object{
			"5": {ID: "0xp5", Fields: map[string]interface{}{
				"author":       "0xcreator",
				"content":      "old",
				"content_type": float64(0),
				"timestamp_ms": "100",
			}},
			"9": {ID: "0xp9", Fields: map[string]interface{}{
				"author":       "0xcreator",
				"content":      "new",
				"content_type": float64(0),
				"timestamp_ms": "300",
				"liked_by":     []interface{}{"0xfan", map[string]interface{}{"id": "0xfan2"}},
			}},
		},
		map[string]interface{}{"5": float64(5), "9": float64(9)},
	)

	comm, err := New(c).Community(context.Background(), "0xcomm", "0xM2")
	require.NoError(t, err)

	assert.Equal(t, "hi", comm.Name)
	assert.Equal(t, "desc", comm.Description)
	assert.Equal(t, "bio", comm.ArtistBio)
	assert.Equal(t, "0xcreator", comm.Creator)
	assert.Equal(t, "0xregistry", comm.TierRegistryID)
	assert.Equal(t, 2, comm.MemberCount)
	assert.True(t, comm.ViewerIsMember)

	require.Len(t, comm.Tiers, 2)
	assert.Equal(t, entities.TierPrice{Tier: 1, PriceMist: 1000000000}, comm.Tiers[0])
	assert.Equal(t, entities.TierPrice{Tier: 2, PriceMist: 2000000000}, comm.Tiers[1])

	require.Len(t, comm.Posts, 2)
	assert.EqualValues(t, 9, comm.Posts[0].PostID)
	assert.EqualValues(t, 5, comm.Posts[1].PostID)
	assert.Equal(t, []string{"0xfan", "0xfan2"}, comm.Posts[0].LikedBy)
	assert.Equal(t, 2, comm.Posts[0].LikeCount())
}

func TestProjector_Community_WrongType(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	c.EXPECT().GetObject(gomock.Any(), "0xcoin").Return(&chain.Object{
		ID:     "0xcoin",
		Type:   "0x2::coin::Coin<0x2::sui::SUI>",
		Fields: map[string]interface{}{},
	}, nil)

	_, err := New(c).Community(context.Background(), "0xcoin", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, chain.ErrNotFound))
}

func TestProjector_Community_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	c.EXPECT().GetObject(gomock.Any(), "0xcomm").Return(nil, errTest)

	_, err := New(c).Community(context.Background(), "0xcomm", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errTest))
}

func TestProjector_Comments_Order(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	expectCollection(c, "0xcomments",
		map[string]*chain.Object{
			"a": {ID: "0xa", Fields: map[string]interface{}{"author": "0x1", "content": "late", "timestamp_ms": "300"}},
			"b": {ID: "0xb", Fields: map[string]interface{}{"author": "0x2", "content": "early", "timestamp_ms": "100"}},
			"c": {ID: "0xc", Fields: map[string]interface{}{"author": "0x3", "content": "middle", "timestamp_ms": "200"}},
		},
		nil,
	)

	comments := New(c).Comments(context.Background(), "0xcomments")

	require.Len(t, comments, 3)
	assert.Equal(t, "early", comments[0].Content)
	assert.Equal(t, "middle", comments[1].Content)
	assert.Equal(t, "late", comments[2].Content)
}

func TestProjector_Polls(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	expectCollection(c, "0xpolls",
		map[string]*chain.Object{
			"1": {ID: "0xpoll1", Fields: map[string]interface{}{
				"question":     "favorite?",
				"option_count": float64(2),
				"is_closed":    false,
				"options":      map[string]interface{}{"id": "0xopts"},
				"votes":        map[string]interface{}{"id": "0xvotes"},
			}},
		},
		map[string]interface{}{"1": float64(1)},
	)

	expectCollection(c, "0xopts",
		map[string]*chain.Object{
			"1": {ID: "0xo1", Fields: map[string]interface{}{"value": "second"}},
			"0": {ID: "0xo0", Fields: map[string]interface{}{"value": "first"}},
		},
		map[string]interface{}{"0": float64(0), "1": float64(1)},
	)

	expectCollection(c, "0xvotes",
		map[string]*chain.Object{
			"1": {ID: "0xv1", Fields: map[string]interface{}{"value": "7"}},
		},
		map[string]interface{}{"1": float64(1)},
	)

	polls := New(c).Polls(context.Background(), "0xpolls")

	require.Len(t, polls, 1)
	assert.Equal(t, "favorite?", polls[0].Question)
	assert.Equal(t, []string{"first", "second"}, polls[0].Options)
	assert.Equal(t, []int64{0, 7}, polls[0].Votes)
	assert.False(t, polls[0].Closed)
}

func TestProjector_Polls_PlaceholderOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	expectCollection(c, "0xpolls",
		map[string]*chain.Object{
			"3": {ID: "0xpoll3", Fields: map[string]interface{}{
				"question":     "q",
				"option_count": float64(3),
				"is_closed":    true,
			}},
		},
		map[string]interface{}{"3": float64(3)},
	)

	polls := New(c).Polls(context.Background(), "0xpolls")

	require.Len(t, polls, 1)
	assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, polls[0].Options)
	assert.Equal(t, []int64{0, 0, 0}, polls[0].Votes)
	assert.True(t, polls[0].Closed)
}

func TestProjector_Summaries(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	c.EXPECT().MultiGetObjects(gomock.Any(), []string{"0xa", "0xb"}).Return([]*chain.Object{
		{
			ID:   "0xa",
			Type: "0xpkg::community::Community",
			Fields: map[string]interface{}{
				"name":    "one",
				"creator": "0xc1",
			},
		},
		{
			ID:     "0xb",
			Type:   "0x2::coin::Coin<0x2::sui::SUI>",
			Fields: map[string]interface{}{},
		},
	}, nil)

	infos := New(c).Summaries(context.Background(), []string{"0xa", "0xb", "0xa"})

	require.Len(t, infos, 1)
	assert.Equal(t, "0xa", infos[0].ID)
	assert.Equal(t, "one", infos[0].Name)
}

func TestProjector_Summaries_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)

	assert.Empty(t, New(mock.NewMockClient(ctrl)).Summaries(context.Background(), nil))
}
