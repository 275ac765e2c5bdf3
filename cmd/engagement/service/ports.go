package service

import (
	"context"

	"videotube.com/cmd/model"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/oss"
)

// EdgeStore 点赞与订阅关系存储
type EdgeStore interface {
	FindEdge(ctx context.Context, actorId int64, target model.Target) (*model.Edge, error)
	CreateEdge(ctx context.Context, actorId int64, target model.Target) (*model.Edge, error)
	DeleteEdge(ctx context.Context, kind model.EdgeKind, edgeId int64) error
	CountEdges(ctx context.Context, target model.Target) (int64, error)
	CountEdgesByTargets(ctx context.Context, kind model.EdgeKind, targetIds []int64) (map[int64]int64, error)
	ListEdgesByActor(ctx context.Context, actorId int64, kind model.EdgeKind, offset, limit int) ([]*model.Edge, error)
	ListEdgesByTarget(ctx context.Context, target model.Target, offset, limit int) ([]*model.Edge, error)
	ActorEdgeSet(ctx context.Context, actorId int64, kind model.EdgeKind, targetIds []int64) (map[int64]bool, error)
	DeleteEdgesByTargets(ctx context.Context, kind model.EdgeKind, targetIds []int64) (int64, error)
	CountVideoLikesByOwner(ctx context.Context, ownerId int64) (int64, error)
}

// TargetResolver 判断边指向的对象是否存在
type TargetResolver interface {
	Exists(ctx context.Context, target model.Target) (bool, error)
}

type UserRepository interface {
	FindUser(ctx context.Context, userId int64) (*model.User, error)
	FindUsers(ctx context.Context, userIds []int64) ([]*model.User, error)
	AppendWatchHistory(ctx context.Context, userId, videoId int64) error
	WatchHistory(ctx context.Context, userId int64) ([]int64, error)
	RemoveVideoFromWatchHistories(ctx context.Context, videoId int64) (int64, error)
}

type VideoRepository interface {
	FindVideo(ctx context.Context, videoId int64) (*model.Video, error)
	FindVideos(ctx context.Context, videoIds []int64) ([]*model.Video, error)
	CreateVideo(ctx context.Context, video *model.Video) error
	DeleteVideo(ctx context.Context, videoId int64) (bool, error)
	IncrViews(ctx context.Context, videoId, delta int64) error
	CountVideosByOwner(ctx context.Context, ownerId int64) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerId int64) (int64, error)
	LatestPublishedByOwner(ctx context.Context, ownerId int64) (*model.Video, error)
	ListVideosByOwner(ctx context.Context, ownerId int64) ([]*model.Video, error)
	SearchVideos(ctx context.Context, q *model.VideoQuery) ([]*model.Video, int64, error)
}

type CommentRepository interface {
	CommentIdsByVideo(ctx context.Context, videoId int64) ([]int64, error)
	DeleteCommentsByVideo(ctx context.Context, videoId int64) (int64, error)
}

type PlaylistRepository interface {
	FindPlaylist(ctx context.Context, playlistId int64) (*model.Playlist, error)
	ListPlaylistsByOwner(ctx context.Context, ownerId int64) ([]*model.Playlist, error)
	PlaylistVideoIds(ctx context.Context, playlistId int64) ([]int64, error)
	AddVideo(ctx context.Context, playlistId, videoId int64) (bool, error)
	RemoveVideo(ctx context.Context, playlistId, videoId int64) (bool, error)
	RemoveVideoFromPlaylists(ctx context.Context, videoId int64) (int64, error)
}

// BlobStorage 对象存储，视频文件与封面
type BlobStorage interface {
	Upload(ctx context.Context, localFile string, kind oss.ResourceKind) (*oss.UploadResult, error)
	Release(ctx context.Context, objectURL string, kind oss.ResourceKind) error
}

// Locker 按视频加锁，返回释放函数
type Locker interface {
	Lock(ctx context.Context, videoId int64) (func(), error)
}

// Dependencies 服务依赖，Locker/Producer 可为空
type Dependencies struct {
	Edges     EdgeStore
	Targets   TargetResolver
	Users     UserRepository
	Videos    VideoRepository
	Comments  CommentRepository
	Playlists PlaylistRepository
	Blobs     BlobStorage
	Locker    Locker
	Producer  mq.MessageProducer
}
