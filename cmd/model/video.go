package model

import "time"

type Video struct {
	VideoId     int64     `json:"video_id" gorm:"column:video_id;primaryKey;autoIncrement:false"`
	UserId      int64     `json:"user_id" gorm:"column:user_id;index"`
	Title       string    `json:"title" gorm:"column:title;size:255"`
	Description string    `json:"description" gorm:"column:description;type:text"`
	VideoUrl    string    `json:"video_url" gorm:"column:video_url;size:512"`
	CoverUrl    string    `json:"cover_url" gorm:"column:cover_url;size:512"`
	Duration    float64   `json:"duration" gorm:"column:duration"`
	Views       int64     `json:"views" gorm:"column:views;not null;default:0"`
	IsPublished bool      `json:"is_published" gorm:"column:is_published;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;index"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Video) TableName() string { return "videos" }

// 收藏夹(播放列表)
type Playlist struct {
	PlaylistId  int64     `json:"playlist_id" gorm:"column:playlist_id;primaryKey;autoIncrement:false"`
	UserId      int64     `json:"user_id" gorm:"column:user_id;index"`
	Name        string    `json:"name" gorm:"column:name;size:128"`
	Description string    `json:"description" gorm:"column:description;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Playlist) TableName() string { return "playlists" }

// 播放列表中的视频，同一个视频在一个列表中只出现一次
type PlaylistVideo struct {
	PlaylistVideoId int64     `json:"playlist_video_id" gorm:"column:playlist_video_id;primaryKey;autoIncrement"`
	PlaylistId      int64     `json:"playlist_id" gorm:"column:playlist_id;uniqueIndex:idx_playlist_video"`
	VideoId         int64     `json:"video_id" gorm:"column:video_id;uniqueIndex:idx_playlist_video;index"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at"`
}

func (PlaylistVideo) TableName() string { return "playlist_videos" }

// VideoSortColumns 允许排序的字段与数据库列的对应关系
var VideoSortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"views":      "views",
	"title":      "title",
	"duration":   "duration",
}

// VideoQuery 视频流查询条件
type VideoQuery struct {
	Keyword  string
	OwnerId  int64
	SortBy   string
	SortDesc bool
	Offset   int
	Limit    int
}
