package db

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
)

type VideoDB struct {
	db *gorm.DB
}

func NewVideoDB(db *gorm.DB) *VideoDB {
	return &VideoDB{db: db}
}

// FindVideo 不存在时返回 nil, nil
func (d *VideoDB) FindVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	var video model.Video
	err := d.db.WithContext(ctx).Where("video_id = ?", videoId).Take(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "FindVideo failed, video_id=%d", videoId)
	}
	return &video, nil
}

// FindVideos 批量查询，已删除的ID直接缺席，不保证顺序
func (d *VideoDB) FindVideos(ctx context.Context, videoIds []int64) ([]*model.Video, error) {
	videos := make([]*model.Video, 0, len(videoIds))
	if len(videoIds) == 0 {
		return videos, nil
	}
	if err := d.db.WithContext(ctx).Where("video_id IN ?", videoIds).Find(&videos).Error; err != nil {
		return nil, errors.Wrap(err, "FindVideos failed")
	}
	return videos, nil
}

func (d *VideoDB) CreateVideo(ctx context.Context, video *model.Video) error {
	if err := d.db.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrapf(err, "CreateVideo failed, video_id=%d", video.VideoId)
	}
	return nil
}

// DeleteVideo 返回是否真的删除了一行
func (d *VideoDB) DeleteVideo(ctx context.Context, videoId int64) (bool, error) {
	result := d.db.WithContext(ctx).Where("video_id = ?", videoId).Delete(&model.Video{})
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "DeleteVideo failed, video_id=%d", videoId)
	}
	return result.RowsAffected > 0, nil
}

// IncrViews 原子地增加播放量
func (d *VideoDB) IncrViews(ctx context.Context, videoId, delta int64) error {
	result := d.db.WithContext(ctx).Model(&model.Video{}).
		Where("video_id = ?", videoId).
		UpdateColumn("views", gorm.Expr("views + ?", delta))
	if result.Error != nil {
		return errors.Wrapf(result.Error, "IncrViews failed, video_id=%d", videoId)
	}
	if result.RowsAffected == 0 {
		return errno.NotFoundErr.WithMessage("video not found")
	}
	return nil
}

func (d *VideoDB) CountVideosByOwner(ctx context.Context, ownerId int64) (count int64, err error) {
	if err = d.db.WithContext(ctx).Model(&model.Video{}).Where("user_id = ?", ownerId).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "CountVideosByOwner failed, owner=%d", ownerId)
	}
	return count, nil
}

func (d *VideoDB) SumViewsByOwner(ctx context.Context, ownerId int64) (total int64, err error) {
	if err = d.db.WithContext(ctx).Model(&model.Video{}).
		Select("COALESCE(SUM(views), 0)").
		Where("user_id = ?", ownerId).
		Scan(&total).Error; err != nil {
		return 0, errors.Wrapf(err, "SumViewsByOwner failed, owner=%d", ownerId)
	}
	return total, nil
}

// LatestPublishedByOwner 频道最新发布的视频，没有时返回 nil, nil
func (d *VideoDB) LatestPublishedByOwner(ctx context.Context, ownerId int64) (*model.Video, error) {
	var video model.Video
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND is_published = ?", ownerId, true).
		Order("created_at DESC").
		Take(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "LatestPublishedByOwner failed, owner=%d", ownerId)
	}
	return &video, nil
}

// ListVideosByOwner 获取用户发布的全部视频
func (d *VideoDB) ListVideosByOwner(ctx context.Context, ownerId int64) ([]*model.Video, error) {
	var videos []*model.Video
	if err := d.db.WithContext(ctx).Where("user_id = ?", ownerId).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, errors.Wrapf(err, "ListVideosByOwner failed, owner=%d", ownerId)
	}
	return videos, nil
}

// SearchVideos 已发布视频的检索、排序与分页
func (d *VideoDB) SearchVideos(ctx context.Context, q *model.VideoQuery) ([]*model.Video, int64, error) {
	column, ok := model.VideoSortColumns[q.SortBy]
	if !ok {
		return nil, 0, errno.ValidationErr.WithMessage("unsupported sort field: " + q.SortBy)
	}

	tx := d.db.WithContext(ctx).Model(&model.Video{}).Where("is_published = ?", true)
	if q.OwnerId != 0 {
		tx = tx.Where("user_id = ?", q.OwnerId)
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		pattern := "%" + strings.ToLower(escapeLike(kw)) + "%"
		tx = tx.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	query := tx.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "SearchVideos count failed")
	}

	videos := make([]*model.Video, 0)
	if err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: q.SortDesc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "video_id"}, Desc: q.SortDesc}).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&videos).Error; err != nil {
		return nil, 0, errors.Wrap(err, "SearchVideos failed")
	}
	return videos, total, nil
}
