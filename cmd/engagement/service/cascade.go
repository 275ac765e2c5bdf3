package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/oss"
)

var _ mq.VideoDeletedHandler = (*EngagementService)(nil)

// 级联删除的步骤名
const (
	StepDeleteVideo      = "delete_video"
	StepDeleteComments   = "delete_comments"
	StepDeleteVideoLikes = "delete_video_likes"
	StepPrunePlaylists   = "prune_playlists"
	StepPruneHistories   = "prune_watch_histories"
	StepReleaseVideoFile = "release_video_file"
	StepReleaseThumbnail = "release_thumbnail"
)

// StepResult 单个步骤的执行结果
type StepResult struct {
	Name     string `json:"name"`
	Affected int64  `json:"affected"`
	Err      error  `json:"-"`
}

func (r StepResult) Failed() bool { return r.Err != nil }

// DeletionReport 级联删除报告，部分步骤失败时不回滚
type DeletionReport struct {
	VideoId int64        `json:"videoId"`
	Steps   []StepResult `json:"steps"`
}

func (r *DeletionReport) Complete() bool {
	return len(r.FailedSteps()) == 0
}

func (r *DeletionReport) FailedSteps() []string {
	failed := make([]string, 0)
	for _, step := range r.Steps {
		if step.Failed() {
			failed = append(failed, step.Name)
		}
	}
	return failed
}

type cascadeStep struct {
	name string
	run  func(ctx context.Context, video *model.Video) (int64, error)
}

// cascadeSteps 视频记录删除之后依次执行，单步失败不影响后续步骤
func (s *EngagementService) cascadeSteps() []cascadeStep {
	return []cascadeStep{
		{StepDeleteComments, s.deleteComments},
		{StepDeleteVideoLikes, func(ctx context.Context, v *model.Video) (int64, error) {
			return s.edges.DeleteEdgesByTargets(ctx, model.EdgeVideoLike, []int64{v.VideoId})
		}},
		{StepPrunePlaylists, func(ctx context.Context, v *model.Video) (int64, error) {
			return s.playlists.RemoveVideoFromPlaylists(ctx, v.VideoId)
		}},
		{StepPruneHistories, func(ctx context.Context, v *model.Video) (int64, error) {
			return s.users.RemoveVideoFromWatchHistories(ctx, v.VideoId)
		}},
		{StepReleaseVideoFile, func(ctx context.Context, v *model.Video) (int64, error) {
			return s.releaseBlob(ctx, v.VideoUrl, oss.ResourceVideo)
		}},
		{StepReleaseThumbnail, func(ctx context.Context, v *model.Video) (int64, error) {
			return s.releaseBlob(ctx, v.CoverUrl, oss.ResourceImage)
		}},
	}
}

// DeleteVideo 删除视频及其全部依赖数据，只有作者可以删除
func (s *EngagementService) DeleteVideo(ctx context.Context, actorId, videoId int64) (*DeletionReport, error) {
	if actorId == 0 {
		return nil, errno.ValidationErr.WithMessage("actor id is required")
	}
	if videoId == 0 {
		return nil, errno.ValidationErr.WithMessage("video id is required")
	}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, videoId)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	video, err := s.videos.FindVideo(ctx, videoId)
	if err != nil {
		return nil, errors.WithMessage(err, "find video failed")
	}
	if video == nil {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}
	if video.UserId != actorId {
		return nil, errno.ForbiddenErr.WithMessage("only the owner can delete this video")
	}

	deleted, err := s.videos.DeleteVideo(ctx, videoId)
	if err != nil {
		return nil, errors.WithMessage(err, "delete video record failed")
	}
	if !deleted {
		// 并发删除已经完成
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}

	report := &DeletionReport{
		VideoId: videoId,
		Steps:   []StepResult{{Name: StepDeleteVideo, Affected: 1}},
	}
	for _, step := range s.cascadeSteps() {
		affected, err := step.run(ctx, video)
		if err != nil {
			hlog.CtxErrorf(ctx, "cascade step %s failed for video %d: %v", step.name, videoId, err)
		}
		report.Steps = append(report.Steps, StepResult{Name: step.name, Affected: affected, Err: err})
	}

	s.publishVideoDeleted(ctx, video, report)
	return report, nil
}

// deleteComments 先删评论的点赞，再删评论本身
func (s *EngagementService) deleteComments(ctx context.Context, video *model.Video) (int64, error) {
	commentIds, err := s.comments.CommentIdsByVideo(ctx, video.VideoId)
	if err != nil {
		return 0, err
	}
	if len(commentIds) == 0 {
		return 0, nil
	}
	if _, err = s.edges.DeleteEdgesByTargets(ctx, model.EdgeCommentLike, commentIds); err != nil {
		return 0, errors.WithMessage(err, "delete comment likes failed")
	}
	return s.comments.DeleteCommentsByVideo(ctx, video.VideoId)
}

func (s *EngagementService) releaseBlob(ctx context.Context, url string, kind oss.ResourceKind) (int64, error) {
	if url == "" {
		return 0, nil
	}
	if err := s.blobs.Release(ctx, url, kind); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *EngagementService) publishVideoDeleted(ctx context.Context, video *model.Video, report *DeletionReport) {
	if s.producer == nil {
		return
	}
	event := &mq.VideoDeletedEvent{
		EventID:     uuid.NewString(),
		VideoID:     video.VideoId,
		OwnerID:     video.UserId,
		VideoURL:    video.VideoUrl,
		CoverURL:    video.CoverUrl,
		FailedSteps: report.FailedSteps(),
		Timestamp:   s.now().Unix(),
	}
	if err := s.producer.PublishVideoDeletedEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish video deleted event failed, video=%d: %v", video.VideoId, err)
	}
}

// RepairCascade 重新执行删除事件中失败的步骤，所有步骤均可重复执行
func (s *EngagementService) RepairCascade(ctx context.Context, event *mq.VideoDeletedEvent) (*DeletionReport, error) {
	report := &DeletionReport{VideoId: event.VideoID, Steps: []StepResult{}}
	if len(event.FailedSteps) == 0 {
		return report, nil
	}

	existing, err := s.videos.FindVideo(ctx, event.VideoID)
	if err != nil {
		return nil, errors.WithMessage(err, "find video failed")
	}
	if existing != nil {
		return nil, errno.InvalidOperationErr.WithMessage("video record still exists")
	}

	failed := make(map[string]bool, len(event.FailedSteps))
	for _, name := range event.FailedSteps {
		failed[name] = true
	}
	video := &model.Video{
		VideoId:  event.VideoID,
		UserId:   event.OwnerID,
		VideoUrl: event.VideoURL,
		CoverUrl: event.CoverURL,
	}
	for _, step := range s.cascadeSteps() {
		if !failed[step.name] {
			continue
		}
		affected, err := step.run(ctx, video)
		report.Steps = append(report.Steps, StepResult{Name: step.name, Affected: affected, Err: err})
	}

	if still := report.FailedSteps(); len(still) > 0 {
		return report, errno.ExternalServiceErr.WithMessage("cascade steps still failing: " + strings.Join(still, ","))
	}
	hlog.CtxInfof(ctx, "cascade repaired for video %d, steps=%v", event.VideoID, event.FailedSteps)
	return report, nil
}

// HandleVideoDeleted 作为删除事件的消费者
func (s *EngagementService) HandleVideoDeleted(ctx context.Context, event *mq.VideoDeletedEvent) error {
	_, err := s.RepairCascade(ctx, event)
	return err
}
