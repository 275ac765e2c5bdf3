package model

import (
	"fmt"
	"time"
)

type Comment struct {
	CommentId int64     `json:"comment_id" gorm:"column:comment_id;primaryKey;autoIncrement:false"`
	UserId    int64     `json:"user_id" gorm:"column:user_id;index"`
	VideoId   int64     `json:"video_id" gorm:"column:video_id;index"`
	Content   string    `json:"content" gorm:"column:content;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Comment) TableName() string { return "comments" }

type Tweet struct {
	TweetId   int64     `json:"tweet_id" gorm:"column:tweet_id;primaryKey;autoIncrement:false"`
	UserId    int64     `json:"user_id" gorm:"column:user_id;index"`
	Content   string    `json:"content" gorm:"column:content;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Tweet) TableName() string { return "tweets" }

// LikeTarget 点赞对象的类别
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like 一个用户对一个对象的点赞，(liked_by, target_kind, target_id) 唯一
// 唯一索引由MySQL负责查重，而不是先读后写
type Like struct {
	LikeId     int64      `json:"like_id" gorm:"column:like_id;primaryKey;autoIncrement:false"`
	LikedBy    int64      `json:"liked_by" gorm:"column:liked_by;uniqueIndex:idx_like_target,priority:1"`
	TargetKind LikeTarget `json:"target_kind" gorm:"column:target_kind;size:16;uniqueIndex:idx_like_target,priority:2;index:idx_target,priority:1"`
	TargetId   int64      `json:"target_id" gorm:"column:target_id;uniqueIndex:idx_like_target,priority:3;index:idx_target,priority:2"`
	CreatedAt  time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (Like) TableName() string { return "likes" }

// EdgeKind 关系边类别
type EdgeKind string

const (
	EdgeVideoLike    EdgeKind = "video_like"
	EdgeCommentLike  EdgeKind = "comment_like"
	EdgeTweetLike    EdgeKind = "tweet_like"
	EdgeSubscription EdgeKind = "subscription"
)

func (k EdgeKind) Valid() bool {
	switch k {
	case EdgeVideoLike, EdgeCommentLike, EdgeTweetLike, EdgeSubscription:
		return true
	}
	return false
}

// LikeTarget 返回点赞类边对应的对象类别，订阅边返回 false
func (k EdgeKind) LikeTarget() (LikeTarget, bool) {
	switch k {
	case EdgeVideoLike:
		return LikeTargetVideo, true
	case EdgeCommentLike:
		return LikeTargetComment, true
	case EdgeTweetLike:
		return LikeTargetTweet, true
	}
	return "", false
}

// Target 边指向的对象
type Target struct {
	Kind EdgeKind `json:"kind"`
	Id   int64    `json:"id"`
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.Id)
}

// Edge 点赞或订阅关系的统一视图
type Edge struct {
	Id        int64     `json:"id"`
	ActorId   int64     `json:"actor_id"`
	Kind      EdgeKind  `json:"kind"`
	TargetId  int64     `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}
