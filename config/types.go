package config

type config struct {
	Server    server    `yaml:"server" mapstructure:"server"`
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	Minio     minio     `yaml:"minio" mapstructure:"minio"`
	RabbitMq  rabbitmq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jaeger    jaeger    `yaml:"jaeger" mapstructure:"jaeger"`
	Jwt       jwt       `yaml:"jwt" mapstructure:"jwt"`
	RateLimit rateLimit `yaml:"rate_limit" mapstructure:"rate_limit"`
	Sentinel  sentinel  `yaml:"sentinel" mapstructure:"sentinel"`
	Cascade   cascade   `yaml:"cascade" mapstructure:"cascade"`
	Pprof     pprof     `yaml:"pprof" mapstructure:"pprof"`
}

type server struct {
	Addr           string   `yaml:"addr"`
	AllowOrigins   []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	MaxRequestBody int      `yaml:"max_request_body" mapstructure:"max_request_body"`
	UploadDir      string   `yaml:"upload_dir" mapstructure:"upload_dir"`
}

type mysql struct {
	Addr         string `yaml:"addr"`
	Database     string `yaml:"database"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Charset      string `yaml:"charset"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type minio struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey  string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL     bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	PublicHost string `yaml:"public_host" mapstructure:"public_host"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type jaeger struct {
	Enable    bool   `yaml:"enable"`
	AgentAddr string `yaml:"agent_addr" mapstructure:"agent_addr"`
}

type jwt struct {
	Key        string `yaml:"key"`
	Timeout    string `yaml:"timeout"`
	MaxRefresh string `yaml:"max_refresh" mapstructure:"max_refresh"`
}

type rateLimit struct {
	Window      string `yaml:"window"`
	MaxRequests int64  `yaml:"max_requests" mapstructure:"max_requests"`
}

type sentinel struct {
	ToggleQPS float64 `yaml:"toggle_qps" mapstructure:"toggle_qps"`
}

type cascade struct {
	LockTTL string `yaml:"lock_ttl" mapstructure:"lock_ttl"`
}

type pprof struct {
	Enable bool   `yaml:"enable"`
	Addr   string `yaml:"addr"`
}
