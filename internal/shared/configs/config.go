package configs

// Config holds all configuration for the application.
type Config struct {
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Source   SourceConfig   `mapstructure:"source" validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
	Report   ReportConfig   `mapstructure:"report" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,loglevel"`
	Format string `mapstructure:"format" validate:"required,oneof=json console"`
}

// SourceConfig holds the metrics source (analytics API) configuration.
type SourceConfig struct {
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`
	APIToken string `mapstructure:"api_token" validate:"required"`
	ZoneID   string `mapstructure:"zone_id" validate:"required"`
	Timeout  int    `mapstructure:"timeout" validate:"required,min=1"` // seconds, per request
}

// PipelineConfig holds window processing configuration.
type PipelineConfig struct {
	BucketWorkers   int  `mapstructure:"bucket_workers" validate:"required,min=1,max=24"`
	ParallelQueries bool `mapstructure:"parallel_queries"`
}

// ReportConfig holds report output configuration.
type ReportConfig struct {
	RootDir          string `mapstructure:"root_dir" validate:"required"`
	FileName         string `mapstructure:"file_name" validate:"required"`
	IncludeDomains   bool   `mapstructure:"include_domains"`
	IncludePlatforms bool   `mapstructure:"include_platforms"`
	Archive          bool   `mapstructure:"archive"`
}

// ServerConfig holds server-related configuration for serve mode.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// ScheduleConfig holds the cron schedule used in serve mode.
type ScheduleConfig struct {
	Cron string `mapstructure:"cron" validate:"required,cron"`
}
