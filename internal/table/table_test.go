package table

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbase-labs/pythia/internal/chain"
	"github.com/fanbase-labs/pythia/internal/chain/mock"
)

var errTest = errors.New("test")

func TestWalker_Entries_EmptyHandle(t *testing.T) {
	w := New(mock.NewMockClient(gomock.NewController(t)))

	entries, err := w.Entries(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWalker_Entries_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	c.EXPECT().ListCollectionEntries(gomock.Any(), "0xhandle").Return(nil, errTest)

	_, err := New(c).Entries(context.Background(), "0xhandle")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errTest))
}

func TestWalker_ForEach_SkipsBadEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	c.EXPECT().ListCollectionEntries(gomock.Any(), "0xhandle").Return([]chain.Entry{
		{Key: "1", ObjectID: "0x1"},
		{Key: "2", ObjectID: "0x2"},
		{Key: "3", ObjectID: "0x3"},
		{Key: "4", ObjectID: "0x4"},
	}, nil)

	c.EXPECT().ReadCollectionEntry(gomock.Any(), "0xhandle", "1").
		Return(&chain.Object{ID: "0x1", Fields: map[string]interface{}{"v": "a"}}, nil)
	c.EXPECT().ReadCollectionEntry(gomock.Any(), "0xhandle", "2").Return(nil, errTest)
	c.EXPECT().ReadCollectionEntry(gomock.Any(), "0xhandle", "3").Return(nil, nil)
	c.EXPECT().ReadCollectionEntry(gomock.Any(), "0xhandle", "4").
		Return(&chain.Object{ID: "0x4", Fields: map[string]interface{}{"v": "d"}}, nil)

	var seen []string
	err := New(c).ForEach(context.Background(), "0xhandle", func(e chain.Entry, o *chain.Object) {
		seen = append(seen, o.ID)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"0x1", "0x4"}, seen)
}

func TestWalker_ForEach_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewMockClient(ctrl)

	c.EXPECT().ListCollectionEntries(gomock.Any(), "0xhandle").Return(nil, errTest)

	err := New(c).ForEach(context.Background(), "0xhandle", func(e chain.Entry, o *chain.Object) {
		t.Fatal("callback must not run")
	})

	require.Error(t, err)
}
