package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/oss"
	"videotube.com/pkg/utils"
)

// PublishInput 发布视频的参数，文件为已落盘的临时文件
type PublishInput struct {
	Title         string
	Description   string
	VideoFile     string
	ThumbnailFile string
	IsPublished   bool
}

// PublishVideo 上传视频与封面后创建视频记录，记录创建失败时回收已上传的文件
func (s *EngagementService) PublishVideo(ctx context.Context, actorId int64, in *PublishInput) (*model.Video, error) {
	if actorId == 0 {
		return nil, errno.ValidationErr.WithMessage("actor id is required")
	}
	if in == nil || strings.TrimSpace(in.Title) == "" {
		return nil, errno.ValidationErr.WithMessage("title is required")
	}
	if in.VideoFile == "" || in.ThumbnailFile == "" {
		return nil, errno.ValidationErr.WithMessage("video file and thumbnail are required")
	}

	videoRes, err := s.blobs.Upload(ctx, in.VideoFile, oss.ResourceVideo)
	if err != nil {
		return nil, errors.WithMessage(err, "upload video file failed")
	}
	thumbRes, err := s.blobs.Upload(ctx, in.ThumbnailFile, oss.ResourceImage)
	if err != nil {
		s.releaseQuietly(ctx, videoRes.URL, oss.ResourceVideo)
		return nil, errors.WithMessage(err, "upload thumbnail failed")
	}

	video := &model.Video{
		VideoId:     utils.GenerateID(),
		UserId:      actorId,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		VideoUrl:    videoRes.URL,
		CoverUrl:    thumbRes.URL,
		IsPublished: in.IsPublished,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if videoRes.Duration != nil {
		video.Duration = *videoRes.Duration
	}

	if err = s.videos.CreateVideo(ctx, video); err != nil {
		s.releaseQuietly(ctx, videoRes.URL, oss.ResourceVideo)
		s.releaseQuietly(ctx, thumbRes.URL, oss.ResourceImage)
		return nil, errors.WithMessage(err, "create video failed")
	}
	hlog.CtxInfof(ctx, "video %d published by user %d", video.VideoId, actorId)
	return video, nil
}

func (s *EngagementService) releaseQuietly(ctx context.Context, url string, kind oss.ResourceKind) {
	if err := s.blobs.Release(ctx, url, kind); err != nil {
		hlog.CtxWarnf(ctx, "release %s failed: %v", url, err)
	}
}
