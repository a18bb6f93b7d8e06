package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Folders  FoldersConfig  `mapstructure:"folders"`
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Sorter   SorterConfig   `mapstructure:"sorter"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

type FoldersConfig struct {
	Watch  string `mapstructure:"watch"`  // 下载落地目录，被监视
	TV     string `mapstructure:"tv"`     // 剧集归档目录
	Movies string `mapstructure:"movies"` // 电影归档目录
}

type TMDBConfig struct {
	APIKey         string `mapstructure:"api_key"` // 为空时完全禁用元数据查询
	BaseURL        string `mapstructure:"base_url"`
	Language       string `mapstructure:"language"`
	QPS            int    `mapstructure:"qps"`             // 每秒请求数限制
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // 单次查询超时
}

type TelegramConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	BotToken string  `mapstructure:"bot_token"`
	ChatIDs  []int64 `mapstructure:"chat_ids"`
}

type SorterConfig struct {
	ScanCron           string   `mapstructure:"scan_cron"`            // 周期全量扫描的cron表达式
	SettleSeconds      int      `mapstructure:"settle_seconds"`       // 新目录静置多久后才处理
	ConflictPolicy     string   `mapstructure:"conflict_policy"`      // version/skip/overwrite
	MaxVersionProbes   int      `mapstructure:"max_version_probes"`   // 版本探测上限
	VideoExtensions    []string `mapstructure:"video_extensions"`     // 视频扩展名
	SubtitleExtensions []string `mapstructure:"subtitle_extensions"`  // 字幕扩展名
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// 设置默认值
	viper.SetDefault("server.host", "")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "console")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.colorize", true)
	viper.SetDefault("log.add_source", false)

	viper.SetDefault("folders.watch", "/media/incoming")
	viper.SetDefault("folders.tv", "/media/TV")
	viper.SetDefault("folders.movies", "/media/Movies")

	viper.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	viper.SetDefault("tmdb.language", "en-US")
	viper.SetDefault("tmdb.qps", 40)
	viper.SetDefault("tmdb.timeout_seconds", 10)

	viper.SetDefault("telegram.enabled", false)

	// 整理配置默认值
	viper.SetDefault("sorter.scan_cron", "@every 1m")
	viper.SetDefault("sorter.settle_seconds", 30)
	viper.SetDefault("sorter.conflict_policy", "version")
	viper.SetDefault("sorter.max_version_probes", 1000)
	viper.SetDefault("sorter.video_extensions", []string{
		"mkv", "mp4", "avi", "mov", "wmv", "flv", "m4v", "mpg", "mpeg",
	})
	viper.SetDefault("sorter.subtitle_extensions", []string{
		"srt", "ass", "ssa", "sub", "vtt",
	})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
