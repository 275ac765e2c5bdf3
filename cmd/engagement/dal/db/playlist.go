package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"videotube.com/cmd/model"
)

type PlaylistDB struct {
	db *gorm.DB
}

func NewPlaylistDB(db *gorm.DB) *PlaylistDB {
	return &PlaylistDB{db: db}
}

// FindPlaylist 不存在时返回 nil, nil
func (d *PlaylistDB) FindPlaylist(ctx context.Context, playlistId int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := d.db.WithContext(ctx).Where("playlist_id = ?", playlistId).Take(&playlist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "FindPlaylist failed, playlist_id=%d", playlistId)
	}
	return &playlist, nil
}

func (d *PlaylistDB) ListPlaylistsByOwner(ctx context.Context, ownerId int64) ([]*model.Playlist, error) {
	var playlists []*model.Playlist
	if err := d.db.WithContext(ctx).Where("user_id = ?", ownerId).Order("created_at DESC").Find(&playlists).Error; err != nil {
		return nil, errors.Wrapf(err, "ListPlaylistsByOwner failed, owner=%d", ownerId)
	}
	return playlists, nil
}

// PlaylistVideoIds 按加入顺序返回列表中的视频ID，可能包含已删除视频
func (d *PlaylistDB) PlaylistVideoIds(ctx context.Context, playlistId int64) ([]int64, error) {
	ids := make([]int64, 0)
	if err := d.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistId).
		Order("playlist_video_id ASC").
		Pluck("video_id", &ids).Error; err != nil {
		return nil, errors.Wrapf(err, "PlaylistVideoIds failed, playlist_id=%d", playlistId)
	}
	return ids, nil
}

// AddVideo 追加到列表末尾，顺序由自增主键决定，已存在时返回 false
func (d *PlaylistDB) AddVideo(ctx context.Context, playlistId, videoId int64) (bool, error) {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PlaylistVideo{
			PlaylistId: playlistId,
			VideoId:    videoId,
			CreatedAt:  time.Now(),
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return false, nil
		}
		return false, errors.Wrapf(result.Error, "AddVideo failed, playlist_id=%d video_id=%d", playlistId, videoId)
	}
	return result.RowsAffected > 0, nil
}

func (d *PlaylistDB) RemoveVideo(ctx context.Context, playlistId, videoId int64) (bool, error) {
	result := d.db.WithContext(ctx).Where("playlist_id = ? AND video_id = ?", playlistId, videoId).Delete(&model.PlaylistVideo{})
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "RemoveVideo failed, playlist_id=%d video_id=%d", playlistId, videoId)
	}
	return result.RowsAffected > 0, nil
}

// RemoveVideoFromPlaylists 从所有播放列表中移除该视频
func (d *PlaylistDB) RemoveVideoFromPlaylists(ctx context.Context, videoId int64) (int64, error) {
	result := d.db.WithContext(ctx).Where("video_id = ?", videoId).Delete(&model.PlaylistVideo{})
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "RemoveVideoFromPlaylists failed, video_id=%d", videoId)
	}
	return result.RowsAffected, nil
}
