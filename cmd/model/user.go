package model

import "time"

type User struct {
	UserId    int64     `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement:false"`
	UserName  string    `json:"user_name" gorm:"column:user_name;size:64;uniqueIndex"`
	AvatarUrl string    `json:"avatar_url" gorm:"column:avatar_url;size:512"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }

// WatchHistory 用户观看历史，(user_id, video_id) 唯一，按首次观看时间排序
type WatchHistory struct {
	WatchHistoryId int64     `json:"watch_history_id" gorm:"column:watch_history_id;primaryKey;autoIncrement"`
	UserId         int64     `json:"user_id" gorm:"column:user_id;uniqueIndex:idx_user_video"`
	VideoId        int64     `json:"video_id" gorm:"column:video_id;uniqueIndex:idx_user_video;index"`
	WatchedAt      time.Time `json:"watched_at" gorm:"column:watched_at"`
}

func (WatchHistory) TableName() string { return "watch_histories" }

// UserLite 对外公开的用户字段
type UserLite struct {
	UserId    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	AvatarUrl string `json:"avatar_url"`
}

func (u *User) Lite() *UserLite {
	if u == nil {
		return nil
	}
	return &UserLite{UserId: u.UserId, UserName: u.UserName, AvatarUrl: u.AvatarUrl}
}
