package oss

import (
	"os"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"videotube.com/config"
)

// InitMinio 创建 MinIO 客户端，环境变量优先于配置文件
func InitMinio() (*Storage, error) {
	endpoint := getEnvOrDefault("MINIO_ENDPOINT", config.ConfigInfo.Minio.Endpoint)
	accessKeyID := getEnvOrDefault("MINIO_ACCESS_KEY", config.ConfigInfo.Minio.AccessKey)
	secretAccessKey := getEnvOrDefault("MINIO_SECRET_KEY", config.ConfigInfo.Minio.SecretKey)
	useSSL := getEnvOrDefault("MINIO_USE_SSL", "") == "true" || config.ConfigInfo.Minio.UseSSL

	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", endpoint, accessKeyID)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return nil, err
	}

	hlog.Info("Connect Minio Success")
	publicHost := config.ConfigInfo.Minio.PublicHost
	if publicHost == "" {
		publicHost = endpoint
	}
	return NewStorage(client, publicHost), nil
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
