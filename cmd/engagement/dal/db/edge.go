package db

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/utils"
)

// EdgeDB 点赞与订阅关系存储，(actor, target, kind) 的唯一性由数据库唯一索引保证
type EdgeDB struct {
	db *gorm.DB
}

func NewEdgeDB(db *gorm.DB) *EdgeDB {
	return &EdgeDB{db: db}
}

func invalidKind(kind model.EdgeKind) error {
	return errno.ValidationErr.WithMessage("unknown relation kind: " + string(kind))
}

// FindEdge 查询关系边，不存在时返回 nil, nil
func (d *EdgeDB) FindEdge(ctx context.Context, actorId int64, target model.Target) (*model.Edge, error) {
	if target.Kind == model.EdgeSubscription {
		var sub model.Subscription
		err := d.db.WithContext(ctx).Where("subscriber = ? AND channel = ?", actorId, target.Id).Take(&sub).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "FindEdge failed, target=%s", target)
		}
		return sub.Edge(), nil
	}

	likeTarget, ok := target.Kind.LikeTarget()
	if !ok {
		return nil, invalidKind(target.Kind)
	}
	var like model.Like
	err := d.db.WithContext(ctx).
		Where("liked_by = ? AND target_kind = ? AND target_id = ?", actorId, likeTarget, target.Id).
		Take(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "FindEdge failed, target=%s", target)
	}
	return like.Edge(), nil
}

// CreateEdge 创建关系边，唯一索引冲突时返回 errno.ConflictErr
func (d *EdgeDB) CreateEdge(ctx context.Context, actorId int64, target model.Target) (*model.Edge, error) {
	now := time.Now()
	var (
		record interface{}
		edge   *model.Edge
	)
	if target.Kind == model.EdgeSubscription {
		sub := &model.Subscription{
			SubscriptionId: utils.GenerateID(),
			Subscriber:     actorId,
			Channel:        target.Id,
			CreatedAt:      now,
		}
		record, edge = sub, sub.Edge()
	} else {
		likeTarget, ok := target.Kind.LikeTarget()
		if !ok {
			return nil, invalidKind(target.Kind)
		}
		like := &model.Like{
			LikeId:     utils.GenerateID(),
			LikedBy:    actorId,
			TargetKind: likeTarget,
			TargetId:   target.Id,
			CreatedAt:  now,
		}
		record, edge = like, like.Edge()
	}

	if err := d.db.WithContext(ctx).Create(record).Error; err != nil {
		if isDuplicateKey(err) {
			hlog.CtxInfof(ctx, "CreateEdge conflict, actor=%d target=%s", actorId, target)
			return nil, errno.ConflictErr.WithMessage("relation already exists: " + target.String())
		}
		return nil, errors.Wrapf(err, "CreateEdge failed, target=%s", target)
	}
	return edge, nil
}

// DeleteEdge 按ID删除关系边，没有删除任何行时返回 errno.NotFoundErr
func (d *EdgeDB) DeleteEdge(ctx context.Context, kind model.EdgeKind, edgeId int64) error {
	var result *gorm.DB
	switch {
	case kind == model.EdgeSubscription:
		result = d.db.WithContext(ctx).Where("subscription_id = ?", edgeId).Delete(&model.Subscription{})
	case kind.Valid():
		result = d.db.WithContext(ctx).Where("like_id = ?", edgeId).Delete(&model.Like{})
	default:
		return invalidKind(kind)
	}
	if result.Error != nil {
		return errors.Wrapf(result.Error, "DeleteEdge failed, kind=%s id=%d", kind, edgeId)
	}
	if result.RowsAffected == 0 {
		return errno.NotFoundErr.WithMessage("relation already removed")
	}
	return nil
}

// CountEdges 指向某个对象的关系边数量
func (d *EdgeDB) CountEdges(ctx context.Context, target model.Target) (count int64, err error) {
	tx, err := d.targetScope(ctx, target.Kind)
	if err != nil {
		return 0, err
	}
	if target.Kind == model.EdgeSubscription {
		err = tx.Where("channel = ?", target.Id).Count(&count).Error
	} else {
		err = tx.Where("target_id = ?", target.Id).Count(&count).Error
	}
	if err != nil {
		return 0, errors.Wrapf(err, "CountEdges failed, target=%s", target)
	}
	return count, nil
}

// CountEdgesByTargets 批量统计，结果中缺失的对象计数为0
func (d *EdgeDB) CountEdgesByTargets(ctx context.Context, kind model.EdgeKind, targetIds []int64) (map[int64]int64, error) {
	res := make(map[int64]int64, len(targetIds))
	if len(targetIds) == 0 {
		return res, nil
	}
	tx, err := d.targetScope(ctx, kind)
	if err != nil {
		return nil, err
	}
	column := "target_id"
	if kind == model.EdgeSubscription {
		column = "channel"
	}
	var rows []struct {
		TargetId int64
		Total    int64
	}
	if err := tx.Select(column+" AS target_id, COUNT(*) AS total").
		Where(column+" IN ?", targetIds).
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "CountEdgesByTargets failed, kind=%s", kind)
	}
	for _, r := range rows {
		res[r.TargetId] = r.Total
	}
	return res, nil
}

// ListEdgesByActor 某个用户发起的关系边，按创建时间倒序；limit<=0 表示不分页
func (d *EdgeDB) ListEdgesByActor(ctx context.Context, actorId int64, kind model.EdgeKind, offset, limit int) ([]*model.Edge, error) {
	if kind == model.EdgeSubscription {
		var subs []*model.Subscription
		if err := paginate(d.db.WithContext(ctx).Where("subscriber = ?", actorId).Order("created_at DESC"), offset, limit).
			Find(&subs).Error; err != nil {
			return nil, errors.Wrapf(err, "ListEdgesByActor failed, actor=%d", actorId)
		}
		return subscriptionEdges(subs), nil
	}
	likeTarget, ok := kind.LikeTarget()
	if !ok {
		return nil, invalidKind(kind)
	}
	var likes []*model.Like
	if err := paginate(d.db.WithContext(ctx).Where("liked_by = ? AND target_kind = ?", actorId, likeTarget).Order("created_at DESC"), offset, limit).
		Find(&likes).Error; err != nil {
		return nil, errors.Wrapf(err, "ListEdgesByActor failed, actor=%d", actorId)
	}
	return likeEdges(likes), nil
}

// ListEdgesByTarget 指向某个对象的关系边，按创建时间倒序
func (d *EdgeDB) ListEdgesByTarget(ctx context.Context, target model.Target, offset, limit int) ([]*model.Edge, error) {
	if target.Kind == model.EdgeSubscription {
		var subs []*model.Subscription
		if err := paginate(d.db.WithContext(ctx).Where("channel = ?", target.Id).Order("created_at DESC"), offset, limit).
			Find(&subs).Error; err != nil {
			return nil, errors.Wrapf(err, "ListEdgesByTarget failed, target=%s", target)
		}
		return subscriptionEdges(subs), nil
	}
	likeTarget, ok := target.Kind.LikeTarget()
	if !ok {
		return nil, invalidKind(target.Kind)
	}
	var likes []*model.Like
	if err := paginate(d.db.WithContext(ctx).Where("target_kind = ? AND target_id = ?", likeTarget, target.Id).Order("created_at DESC"), offset, limit).
		Find(&likes).Error; err != nil {
		return nil, errors.Wrapf(err, "ListEdgesByTarget failed, target=%s", target)
	}
	return likeEdges(likes), nil
}

// ActorEdgeSet 返回 targetIds 中 actor 已建立关系的对象集合
func (d *EdgeDB) ActorEdgeSet(ctx context.Context, actorId int64, kind model.EdgeKind, targetIds []int64) (map[int64]bool, error) {
	res := make(map[int64]bool, len(targetIds))
	if len(targetIds) == 0 || actorId == 0 {
		return res, nil
	}
	var ids []int64
	var err error
	if kind == model.EdgeSubscription {
		err = d.db.WithContext(ctx).Model(&model.Subscription{}).
			Where("subscriber = ? AND channel IN ?", actorId, targetIds).
			Pluck("channel", &ids).Error
	} else {
		likeTarget, ok := kind.LikeTarget()
		if !ok {
			return nil, invalidKind(kind)
		}
		err = d.db.WithContext(ctx).Model(&model.Like{}).
			Where("liked_by = ? AND target_kind = ? AND target_id IN ?", actorId, likeTarget, targetIds).
			Pluck("target_id", &ids).Error
	}
	if err != nil {
		return nil, errors.Wrapf(err, "ActorEdgeSet failed, actor=%d", actorId)
	}
	for _, id := range ids {
		res[id] = true
	}
	return res, nil
}

// DeleteEdgesByTargets 删除指向一批对象的全部关系边
func (d *EdgeDB) DeleteEdgesByTargets(ctx context.Context, kind model.EdgeKind, targetIds []int64) (int64, error) {
	if len(targetIds) == 0 {
		return 0, nil
	}
	var result *gorm.DB
	if kind == model.EdgeSubscription {
		result = d.db.WithContext(ctx).Where("channel IN ?", targetIds).Delete(&model.Subscription{})
	} else {
		likeTarget, ok := kind.LikeTarget()
		if !ok {
			return 0, invalidKind(kind)
		}
		result = d.db.WithContext(ctx).Where("target_kind = ? AND target_id IN ?", likeTarget, targetIds).Delete(&model.Like{})
	}
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "DeleteEdgesByTargets failed, kind=%s", kind)
	}
	return result.RowsAffected, nil
}

// CountVideoLikesByOwner 某个频道全部视频收到的点赞数
func (d *EdgeDB) CountVideoLikesByOwner(ctx context.Context, ownerId int64) (count int64, err error) {
	err = d.db.WithContext(ctx).Model(&model.Like{}).
		Joins("JOIN videos ON videos.video_id = likes.target_id").
		Where("likes.target_kind = ? AND videos.user_id = ?", model.LikeTargetVideo, ownerId).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrapf(err, "CountVideoLikesByOwner failed, owner=%d", ownerId)
	}
	return count, nil
}

func (d *EdgeDB) targetScope(ctx context.Context, kind model.EdgeKind) (*gorm.DB, error) {
	if kind == model.EdgeSubscription {
		return d.db.WithContext(ctx).Model(&model.Subscription{}), nil
	}
	likeTarget, ok := kind.LikeTarget()
	if !ok {
		return nil, invalidKind(kind)
	}
	return d.db.WithContext(ctx).Model(&model.Like{}).Where("target_kind = ?", likeTarget), nil
}

func paginate(tx *gorm.DB, offset, limit int) *gorm.DB {
	if limit <= 0 {
		return tx
	}
	return tx.Offset(offset).Limit(limit)
}

func subscriptionEdges(subs []*model.Subscription) []*model.Edge {
	edges := make([]*model.Edge, 0, len(subs))
	for _, s := range subs {
		edges = append(edges, s.Edge())
	}
	return edges
}

func likeEdges(likes []*model.Like) []*model.Edge {
	edges := make([]*model.Edge, 0, len(likes))
	for _, l := range likes {
		edges = append(edges, l.Edge())
	}
	return edges
}
