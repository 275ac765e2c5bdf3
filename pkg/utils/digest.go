package utils

import (
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"io"
	"os"
)

// FileDigest 文件内容的 md5，用作对象存储中的去重对象名
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New() //nolint:gosec
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
