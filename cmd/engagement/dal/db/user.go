package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"videotube.com/cmd/model"
)

type UserDB struct {
	db *gorm.DB
}

func NewUserDB(db *gorm.DB) *UserDB {
	return &UserDB{db: db}
}

// FindUser 不存在时返回 nil, nil
func (d *UserDB) FindUser(ctx context.Context, userId int64) (*model.User, error) {
	var user model.User
	err := d.db.WithContext(ctx).Where("user_id = ?", userId).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "FindUser failed, user_id=%d", userId)
	}
	return &user, nil
}

func (d *UserDB) FindUsers(ctx context.Context, userIds []int64) ([]*model.User, error) {
	users := make([]*model.User, 0, len(userIds))
	if len(userIds) == 0 {
		return users, nil
	}
	if err := d.db.WithContext(ctx).Where("user_id IN ?", userIds).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "FindUsers failed")
	}
	return users, nil
}

// AppendWatchHistory 记录观看历史，重复观看不会产生新记录
func (d *UserDB) AppendWatchHistory(ctx context.Context, userId, videoId int64) error {
	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.WatchHistory{UserId: userId, VideoId: videoId, WatchedAt: time.Now()}).Error
	if err != nil && !isDuplicateKey(err) {
		return errors.Wrapf(err, "AppendWatchHistory failed, user_id=%d video_id=%d", userId, videoId)
	}
	return nil
}

// WatchHistory 按首次观看顺序返回视频ID，可能包含已删除视频
func (d *UserDB) WatchHistory(ctx context.Context, userId int64) ([]int64, error) {
	ids := make([]int64, 0)
	if err := d.db.WithContext(ctx).Model(&model.WatchHistory{}).
		Where("user_id = ?", userId).
		Order("watched_at ASC, watch_history_id ASC").
		Pluck("video_id", &ids).Error; err != nil {
		return nil, errors.Wrapf(err, "WatchHistory failed, user_id=%d", userId)
	}
	return ids, nil
}

// RemoveVideoFromWatchHistories 从所有用户的观看历史中移除该视频
func (d *UserDB) RemoveVideoFromWatchHistories(ctx context.Context, videoId int64) (int64, error) {
	result := d.db.WithContext(ctx).Where("video_id = ?", videoId).Delete(&model.WatchHistory{})
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "RemoveVideoFromWatchHistories failed, video_id=%d", videoId)
	}
	return result.RowsAffected, nil
}
