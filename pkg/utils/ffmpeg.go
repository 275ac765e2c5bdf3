package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type mediaInfo struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// MediaDuration 读取媒体文件时长(秒)
func MediaDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to inspect the media file")
	}
	return parseMediaDuration(out)
}

func parseMediaDuration(out string) (float64, error) {
	var res mediaInfo
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		return 0, errors.WithMessage(err, "Failed to decode media info")
	}
	if res.Format.Duration == "" {
		return 0, errors.New("media info has no duration")
	}
	d, err := strconv.ParseFloat(res.Format.Duration, 64)
	if err != nil {
		return 0, errors.WithMessage(err, "Invalid duration in media info")
	}
	return d, nil
}

// GenerateThumbnail 截取视频首帧作为封面，文件名跟随视频文件
func GenerateThumbnail(videoPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", errors.WithMessage(err, "Failed to create folders")
	}
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	outputPath := filepath.Join(outputDir, base+"_cover.jpg")
	err := ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"ss":      "00:00:00",
			"vframes": "1",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", errors.WithMessage(err, "Failed to generate the thumbnail")
	}
	return outputPath, nil
}
