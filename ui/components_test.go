package ui

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhkl-dev/cmusic/domain"
	"github.com/yhkl-dev/cmusic/spotify"
)

func numberEntry(n int) entry {
	return entry{label: strconv.Itoa(n)}
}

func labels(entries []entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.label
	}
	return out
}

func TestPageInfo(t *testing.T) {
	p := pageInfo{offset: 20, limit: 20, total: 45}
	assert.False(t, p.isLast())
	assert.Equal(t, 0, p.previous())

	p.offset = 40
	assert.True(t, p.isLast())
	assert.Equal(t, 20, p.previous())
}

func TestLocalPages(t *testing.T) {
	load := local([]int{1, 2, 3, 4, 5}, 2, numberEntry)
	ctx := context.Background()

	tests := []struct {
		offset int
		want   []string
		last   bool
	}{
		{0, []string{"1", "2"}, false},
		{2, []string{"3", "4"}, false},
		{4, []string{"5"}, true},
		{6, []string{}, true},
	}
	for _, tt := range tests {
		entries, info, err := load(ctx, tt.offset)
		require.NoError(t, err)
		assert.Equal(t, tt.want, labels(entries), "offset %d", tt.offset)
		assert.Equal(t, 5, info.total)
		assert.Equal(t, tt.last, info.isLast())
	}
}

func TestRemotePages(t *testing.T) {
	var offsets []int
	load := remote(func(_ context.Context, offset int) (*domain.Page[int], error) {
		offsets = append(offsets, offset)
		return &domain.Page[int]{Limit: 2, Total: 3, Items: []int{offset + 1, offset + 2}}, nil
	}, numberEntry)

	entries, info, err := load(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, labels(entries))
	assert.Equal(t, pageInfo{offset: 2, limit: 2, total: 3}, info)
	assert.Equal(t, []int{2}, offsets)
}

func TestRemotePagesError(t *testing.T) {
	boom := &spotify.APIError{Status: 404, Message: "missing"}
	load := remote(func(context.Context, int) (*domain.Page[int], error) {
		return nil, boom
	}, numberEntry)

	_, _, err := load(context.Background(), 0)
	assert.ErrorIs(t, err, boom)
}

func TestAggregatedFetchesOnce(t *testing.T) {
	calls := 0
	fail := true
	load := aggregated(2, func(context.Context) ([]int, error) {
		calls++
		if fail {
			return nil, errors.New("offline")
		}
		return []int{1, 2, 3}, nil
	}, numberEntry)
	ctx := context.Background()

	_, _, err := load(ctx, 0)
	require.Error(t, err)

	fail = false
	entries, _, err := load(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, labels(entries))

	entries, info, err := load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, labels(entries))
	assert.True(t, info.isLast())
	assert.Equal(t, 2, calls, "a failed fetch is retried on the next load only")
}

func TestFromSessionReadsEachTime(t *testing.T) {
	items := []int{1}
	load := fromSession(func() []int { return items }, 10, numberEntry)

	entries, _, _ := load(context.Background(), 0)
	assert.Equal(t, []string{"1"}, labels(entries))

	items = []int{1, 2}
	entries, _, _ = load(context.Background(), 0)
	assert.Equal(t, []string{"1", "2"}, labels(entries))
}

func TestSearchFieldsQuery(t *testing.T) {
	f := newSearchFields()
	_, ok := f.query()
	assert.False(t, ok, "empty form searches for nothing")

	f.text = "blue"
	f.artist = "joni"
	f.onlyNew = true
	f.types[spotify.SearchPlaylist] = false
	q, ok := f.query()
	require.True(t, ok)
	assert.Equal(t, "blue artist:joni tag:new", q.String())
	assert.Equal(t, []spotify.SearchType{spotify.SearchAlbum, spotify.SearchArtist, spotify.SearchTrack}, q.Types)

	for _, typ := range spotify.AllSearchTypes {
		f.types[typ] = false
	}
	_, ok = f.query()
	assert.False(t, ok, "no category selected")
}
