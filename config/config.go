package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// 使用Viper的好处在于支持配置文件的热更新 同时viper对于大小写并不敏感 都是统一进行处理
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, falling back to defaults: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
			return
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	Load(viper.GetViper())

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8888")
	v.SetDefault("server.max_request_body", 512*1024*1024)
	v.SetDefault("server.upload_dir", "./public/temp")
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.max_open_conns", 100)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.public_host", "localhost:9000")
	v.SetDefault("rabbitmq.addr", "localhost:5672")
	v.SetDefault("jaeger.agent_addr", "localhost:6831")
	v.SetDefault("jwt.timeout", "1h")
	v.SetDefault("jwt.max_refresh", "24h")
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.max_requests", 60)
	v.SetDefault("sentinel.toggle_qps", 500)
	v.SetDefault("cascade.lock_ttl", "30s")
	v.SetDefault("pprof.addr", ":6060")
}

// Load 手动从viper获取配置值，避免Unmarshal问题
func Load(v *viper.Viper) {
	ConfigInfo.Server.Addr = v.GetString("server.addr")
	ConfigInfo.Server.AllowOrigins = v.GetStringSlice("server.allow_origins")
	ConfigInfo.Server.MaxRequestBody = v.GetInt("server.max_request_body")
	ConfigInfo.Server.UploadDir = v.GetString("server.upload_dir")

	ConfigInfo.Mysql.Addr = v.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = v.GetString("mysql.database")
	ConfigInfo.Mysql.Username = v.GetString("mysql.username")
	ConfigInfo.Mysql.Password = v.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = v.GetString("mysql.charset")
	ConfigInfo.Mysql.MaxOpenConns = v.GetInt("mysql.max_open_conns")
	ConfigInfo.Mysql.MaxIdleConns = v.GetInt("mysql.max_idle_conns")

	ConfigInfo.Redis.Addr = v.GetString("redis.addr")
	ConfigInfo.Redis.Password = v.GetString("redis.password")
	ConfigInfo.Redis.DB = v.GetInt("redis.db")

	ConfigInfo.Minio.Endpoint = v.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = v.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = v.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = v.GetBool("minio.use_ssl")
	ConfigInfo.Minio.PublicHost = v.GetString("minio.public_host")

	ConfigInfo.RabbitMq.Addr = v.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = v.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = v.GetString("rabbitmq.password")

	ConfigInfo.Jaeger.Enable = v.GetBool("jaeger.enable")
	ConfigInfo.Jaeger.AgentAddr = v.GetString("jaeger.agent_addr")

	ConfigInfo.Jwt.Key = v.GetString("jwt.key")
	ConfigInfo.Jwt.Timeout = v.GetString("jwt.timeout")
	ConfigInfo.Jwt.MaxRefresh = v.GetString("jwt.max_refresh")

	ConfigInfo.RateLimit.Window = v.GetString("rate_limit.window")
	ConfigInfo.RateLimit.MaxRequests = v.GetInt64("rate_limit.max_requests")

	ConfigInfo.Sentinel.ToggleQPS = v.GetFloat64("sentinel.toggle_qps")

	ConfigInfo.Cascade.LockTTL = v.GetString("cascade.lock_ttl")

	ConfigInfo.Pprof.Enable = v.GetBool("pprof.enable")
	ConfigInfo.Pprof.Addr = v.GetString("pprof.addr")
}

// RabbitMqURL 拼接 amqp 连接串，环境变量 RABBITMQ_URL 优先
func RabbitMqURL() string {
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		return url
	}
	return "amqp://" + ConfigInfo.RabbitMq.Username + ":" + ConfigInfo.RabbitMq.Password + "@" + ConfigInfo.RabbitMq.Addr + "/"
}
