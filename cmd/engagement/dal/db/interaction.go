package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"videotube.com/cmd/model"
)

type CommentDB struct {
	db *gorm.DB
}

func NewCommentDB(db *gorm.DB) *CommentDB {
	return &CommentDB{db: db}
}

// 获取视频下全部评论的ID
func (d *CommentDB) CommentIdsByVideo(ctx context.Context, videoId int64) ([]int64, error) {
	list := make([]int64, 0)
	if err := d.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoId).Pluck("comment_id", &list).Error; err != nil {
		return nil, errors.Wrapf(err, "CommentIdsByVideo failed, video_id=%d", videoId)
	}
	return list, nil
}

func (d *CommentDB) DeleteCommentsByVideo(ctx context.Context, videoId int64) (int64, error) {
	result := d.db.WithContext(ctx).Where("video_id = ?", videoId).Delete(&model.Comment{})
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "DeleteCommentsByVideo failed, video_id=%d", videoId)
	}
	return result.RowsAffected, nil
}

// TargetDB 校验关系边指向的对象是否存在
type TargetDB struct {
	db *gorm.DB
}

func NewTargetDB(db *gorm.DB) *TargetDB {
	return &TargetDB{db: db}
}

func (d *TargetDB) Exists(ctx context.Context, target model.Target) (bool, error) {
	var (
		count int64
		tx    *gorm.DB
	)
	switch target.Kind {
	case model.EdgeVideoLike:
		tx = d.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", target.Id)
	case model.EdgeCommentLike:
		tx = d.db.WithContext(ctx).Model(&model.Comment{}).Where("comment_id = ?", target.Id)
	case model.EdgeTweetLike:
		tx = d.db.WithContext(ctx).Model(&model.Tweet{}).Where("tweet_id = ?", target.Id)
	case model.EdgeSubscription:
		tx = d.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", target.Id)
	default:
		return false, invalidKind(target.Kind)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "Exists failed, target=%s", target)
	}
	return count > 0, nil
}
