package handlers

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/cmd/api/mw"
	"videotube.com/cmd/engagement/svc"
	"videotube.com/cmd/engagement/service"
	"videotube.com/config"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/utils"
)

// VideoPublish 上传视频文件与封面，未提供封面时截取首帧
func VideoPublish(ctx context.Context, c *app.RequestContext) {
	var req PublishParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}

	uploadDir := config.ConfigInfo.Server.UploadDir
	videoHeader, err := c.FormFile("videoFile")
	if err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage("videoFile is required"), nil)
		return
	}
	videoPath, err := saveTemp(c, videoHeader, uploadDir)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}

	var thumbPath string
	if thumbHeader, err := c.FormFile("thumbnail"); err == nil {
		thumbPath, err = saveTemp(c, thumbHeader, uploadDir)
		if err != nil {
			removeQuietly(videoPath)
			response.SendResponse(ctx, c, err, nil)
			return
		}
	} else if thumbPath, err = utils.GenerateThumbnail(videoPath, uploadDir); err != nil {
		hlog.CtxWarnf(ctx, "generate thumbnail for %s failed: %v", videoPath, err)
		removeQuietly(videoPath)
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage("thumbnail is required"), nil)
		return
	}

	video, err := svc.Engagement.PublishVideo(ctx, mw.UserIdFrom(c), &service.PublishInput{
		Title:         req.Title,
		Description:   req.Description,
		VideoFile:     videoPath,
		ThumbnailFile: thumbPath,
		IsPublished:   req.IsPublished,
	})
	if err != nil {
		// 上传失败前文件可能仍在本地
		removeQuietly(videoPath)
		removeQuietly(thumbPath)
	}
	response.SendResponse(ctx, c, err, video)
}

func saveTemp(c *app.RequestContext, fh *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}
	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", errors.Wrap(err, "save uploaded file")
	}
	return path, nil
}

func removeQuietly(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		hlog.Warnf("remove temp file %s failed: %v", path, err)
	}
}
