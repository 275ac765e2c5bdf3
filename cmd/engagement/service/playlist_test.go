package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"videotube.com/pkg/errno"
)

func TestPlaylistViewSkipsDangling(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	f.store.addVideo(10, 1, "a", 5, true)
	f.store.addVideo(11, 2, "b", 7, true)
	f.store.addPlaylist(50, 1, 11, 404, 10)

	view, err := f.svc.PlaylistView(ctx, 50)
	require.NoError(t, err)
	require.Len(t, view.Videos, 2)
	assert.Equal(t, int64(11), view.Videos[0].Video.VideoId)
	assert.Equal(t, "bob", view.Videos[0].Owner.UserName)
	assert.Equal(t, int64(10), view.Videos[1].Video.VideoId)
	assert.Equal(t, int64(2), view.TotalVideos)
	assert.Equal(t, int64(12), view.TotalViews)

	_, err = f.svc.PlaylistView(ctx, 404)
	assert.True(t, errno.IsKind(err, errno.NotFoundErr))
}

func TestUserPlaylists(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addUser(1, "alice")
	f.store.addVideo(10, 1, "a", 5, true)
	f.store.addVideo(11, 1, "b", 7, true)
	f.store.addPlaylist(50, 1, 10, 11)
	f.store.addPlaylist(51, 1)

	list, err := f.svc.UserPlaylists(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].TotalVideos)
	assert.Equal(t, int64(12), list[0].TotalViews)
	assert.Equal(t, int64(0), list[1].TotalVideos)
}

func TestPlaylistMembership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	f.store.addVideo(10, 2, "a", 0, true)
	f.store.addVideo(11, 2, "b", 0, true)
	f.store.addPlaylist(50, 1)

	require.NoError(t, f.svc.AddVideoToPlaylist(ctx, 1, 50, 10))
	require.NoError(t, f.svc.AddVideoToPlaylist(ctx, 1, 50, 11))
	require.NoError(t, f.svc.AddVideoToPlaylist(ctx, 1, 50, 10))
	assert.Equal(t, []int64{10, 11}, f.store.members[50])

	err := f.svc.AddVideoToPlaylist(ctx, 2, 50, 10)
	assert.True(t, errno.IsKind(err, errno.ForbiddenErr))
	err = f.svc.AddVideoToPlaylist(ctx, 1, 50, 404)
	assert.True(t, errno.IsKind(err, errno.NotFoundErr))

	require.NoError(t, f.svc.RemoveVideoFromPlaylist(ctx, 1, 50, 10))
	assert.Equal(t, []int64{11}, f.store.members[50])
	err = f.svc.RemoveVideoFromPlaylist(ctx, 1, 50, 10)
	assert.True(t, errno.IsKind(err, errno.NotFoundErr))
	err = f.svc.RemoveVideoFromPlaylist(ctx, 2, 50, 11)
	assert.True(t, errno.IsKind(err, errno.ForbiddenErr))
	assert.Equal(t, []int64{11}, f.store.members[50])
}
