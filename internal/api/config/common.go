package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
	Platforms PlatformsConfig `mapstructure:"platforms"`
	Video     VideoConfig     `mapstructure:"video"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置，生成的视频制品存储
type MinIOConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	AccessKey   string `mapstructure:"access_key"`
	SecretKey   string `mapstructure:"secret_key"`
	VideoBucket string `mapstructure:"video_bucket"`
	UseSSL      bool   `mapstructure:"use_ssl"`
}

// LLMConfig 视频评分模型配置
type LLMConfig struct {
	URL         string `mapstructure:"url"`
	VisionModel string `mapstructure:"vision_model"`
	ApiKey      string `mapstructure:"api_key"`
	ScorePrompt string `mapstructure:"score_prompt"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// PlatformsConfig 发布平台配置，闭集：youtube / tiktok / instagram
type PlatformsConfig struct {
	FetchTimeout int             `mapstructure:"fetch_timeout"` // 秒，单次指标拉取超时
	YouTube      YouTubeConfig   `mapstructure:"youtube"`
	TikTok       TikTokConfig    `mapstructure:"tiktok"`
	Instagram    InstagramConfig `mapstructure:"instagram"`
}

type YouTubeConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ApiKey       string `mapstructure:"api_key"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
}

type TikTokConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	AccessToken string `mapstructure:"access_token"`
}

type InstagramConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	AccessToken       string `mapstructure:"access_token"`
	BusinessAccountID string `mapstructure:"business_account_id"`
}

// VideoConfig 视频生成配置
type VideoConfig struct {
	FFmpeg     string `mapstructure:"ffmpeg"`
	ScriptDir  string `mapstructure:"script_dir"`
	WorkDir    string `mapstructure:"work_dir"`
	Variations int    `mapstructure:"variations"`
	DailyPicks int    `mapstructure:"daily_picks"`
}

// MetricsConfig 指标采集配置
type MetricsConfig struct {
	RetentionDays int `mapstructure:"retention_days"`
}
