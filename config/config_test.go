package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  addr: "127.0.0.1:9999"
mysql:
  addr: "db:3306"
  database: "videotube"
  username: "root"
  password: "secret"
rabbitmq:
  addr: "mq:5672"
  username: "guest"
  password: "guest"
rate_limit:
  max_requests: 5
`
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	require.NoError(t, v.ReadInConfig())
	Load(v)

	assert.Equal(t, "127.0.0.1:9999", ConfigInfo.Server.Addr)
	assert.Equal(t, "db:3306", ConfigInfo.Mysql.Addr)
	assert.Equal(t, "utf8mb4", ConfigInfo.Mysql.Charset)
	assert.Equal(t, int64(5), ConfigInfo.RateLimit.MaxRequests)
	assert.Equal(t, "30s", ConfigInfo.Cascade.LockTTL)

	t.Setenv("RABBITMQ_URL", "")
	assert.Equal(t, "amqp://guest:guest@mq:5672/", RabbitMqURL())
}

func TestRabbitMqURLFromEnv(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "amqp://u:p@elsewhere:5672/")
	assert.Equal(t, "amqp://u:p@elsewhere:5672/", RabbitMqURL())
}
