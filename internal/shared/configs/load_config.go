package configs

import (
	"fmt"
	"strings"

	"edge-stats/internal/shared/svcerrors"
	"edge-stats/internal/shared/validators"

	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "EDGE_STATS"
	EnvAPIToken = "CLOUDFLARE_API_TOKEN"
	EnvZoneID   = "ZONE_ID"

	DefaultEndpoint = "https://api.cloudflare.com/client/v4/graphql"
)

const (
	codeConfigInvalid  = "CFG_1000"
	codeConfigReadFail = "CFG_1001"
)

// LoadConfig builds the configuration from defaults, an optional YAML file and
// the environment, then validates it. configPath may be empty.
// Every failure is returned as a configuration ServiceError.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The canonical variable names take precedence over the prefixed ones.
	_ = v.BindEnv("source.api_token", EnvAPIToken, EnvPrefix+"_SOURCE_API_TOKEN")
	_ = v.BindEnv("source.zone_id", EnvZoneID, EnvPrefix+"_SOURCE_ZONE_ID")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		// Read from file
		if err := v.ReadInConfig(); err != nil {
			return nil, svcerrors.NewConfigurationError(codeConfigReadFail, fmt.Sprintf("failed to read config file %q", configPath), err)
		}
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, svcerrors.NewConfigurationError(codeConfigReadFail, "failed to unmarshal config", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, svcerrors.NewConfigurationError(codeConfigInvalid, fmt.Sprintf("config validation failed: %s", strings.Join(validationErrors, ", ")), nil)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("source.endpoint", DefaultEndpoint)
	v.SetDefault("source.api_token", "")
	v.SetDefault("source.zone_id", "")
	v.SetDefault("source.timeout", 30)

	v.SetDefault("pipeline.bucket_workers", 1)
	v.SetDefault("pipeline.parallel_queries", false)

	v.SetDefault("report.root_dir", ".")
	v.SetDefault("report.file_name", "cloudflare_hourly_stats.json")
	v.SetDefault("report.include_domains", true)
	v.SetDefault("report.include_platforms", false)
	v.SetDefault("report.archive", false)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 600)
	v.SetDefault("server.idle_timeout", 60)

	v.SetDefault("schedule.cron", "5 * * * *")
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "source.zoneid")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Source.ZoneID" -> "source.zoneid")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	case validators.TagCron:
		msg = fmt.Sprintf("%s (cron expression)", field)
	case validators.TagLogLevel:
		msg = fmt.Sprintf("%s (log level)", field)
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
