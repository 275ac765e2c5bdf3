package oss

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/utils"
)

// ResourceKind 存储对象的类别，决定桶与目录
type ResourceKind string

const (
	ResourceVideo ResourceKind = "video"
	ResourceImage ResourceKind = "image"
)

const location = "us-east-1" // MinIO默认区域

// UploadResult 上传结果，只有视频会带时长
type UploadResult struct {
	URL      string   `json:"url"`
	Duration *float64 `json:"duration,omitempty"`
}

// Storage 基于 MinIO 的对象存储
type Storage struct {
	client     *minio.Client
	publicHost string
}

func NewStorage(client *minio.Client, publicHost string) *Storage {
	return &Storage{client: client, publicHost: publicHost}
}

func bucketFor(kind ResourceKind) string {
	if kind == ResourceVideo {
		return constants.VideoBucketName
	}
	return constants.PictureBucketName
}

func (s *Storage) ensureBucket(ctx context.Context, bucketName string) error {
	// 检查存储桶是否存在，不存在则创建
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		if err = s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("create bucket error: %w", err)
		}
	}
	return nil
}

// Upload 上传本地临时文件，无论成功与否都会删除本地文件
func (s *Storage) Upload(ctx context.Context, localFile string, kind ResourceKind) (*UploadResult, error) {
	if localFile == "" {
		return nil, errno.ValidationErr.WithMessage("local file path is empty")
	}
	defer func() {
		if err := os.Remove(localFile); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "Failed to remove temp file %s: %v", localFile, err)
		}
	}()

	bucketName := bucketFor(kind)
	if err := s.ensureBucket(ctx, bucketName); err != nil {
		return nil, errors.Wrapf(errno.ExternalServiceErr, "ensure bucket %s: %v", bucketName, err)
	}

	sum, err := utils.FileDigest(localFile)
	if err != nil {
		return nil, errors.WithMessage(err, "hash upload file")
	}
	ext := strings.ToLower(filepath.Ext(localFile))
	objectName := string(kind) + "/" + sum + ext
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result := &UploadResult{}
	if kind == ResourceVideo {
		if d, err := utils.MediaDuration(localFile); err != nil {
			hlog.CtxWarnf(ctx, "Failed to read duration of %s: %v", localFile, err)
		} else {
			result.Duration = &d
		}
	}

	if _, err = s.client.FPutObject(ctx, bucketName, objectName, localFile, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		hlog.CtxErrorf(ctx, "Failed to upload %s: %v", localFile, err)
		return nil, errors.Wrapf(errno.ExternalServiceErr, "put object %s: %v", objectName, err)
	}

	result.URL = fmt.Sprintf("http://%s/%s/%s", s.publicHost, bucketName, objectName)
	return result, nil
}

// Release 删除 URL 指向的对象，对象不存在视为成功
func (s *Storage) Release(ctx context.Context, objectURL string, kind ResourceKind) error {
	bucketName, objectName, err := parseObjectURL(objectURL)
	if err != nil {
		return errors.Wrapf(errno.ValidationErr.WithMessage("invalid object url"), "parse object url: %v", err)
	}
	if bucketName != bucketFor(kind) {
		hlog.CtxWarnf(ctx, "Object %s lives in bucket %s, expected %s", objectName, bucketName, bucketFor(kind))
	}
	if err := s.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(errno.ExternalServiceErr, "remove object %s: %v", objectName, err)
	}
	return nil
}

// parseObjectURL 解析 http://host/bucket/object/path 形式的地址
func parseObjectURL(objectURL string) (bucket, object string, err error) {
	if objectURL == "" {
		return "", "", errors.New("empty object url")
	}
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", "", err
	}
	path := strings.TrimPrefix(u.Path, "/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("object url %q has no bucket/object path", objectURL)
	}
	return parts[0], parts[1], nil
}
