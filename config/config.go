package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPass    string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB  int    `mapstructure:"REDIS_AUTH_DB"`
	RedisOTPDB   int    `mapstructure:"REDIS_OTP_DB"`
	RedisQueueDB int    `mapstructure:"REDIS_QUEUE_DB"`

	// Default commission rates applied to new provider profiles, amounts in
	// Algerian dinars except the petshop percentage.
	DefaultVetCommissionDa     int `mapstructure:"DEFAULT_VET_COMMISSION_DA"`
	DefaultDaycareHourlyDa     int `mapstructure:"DEFAULT_DAYCARE_HOURLY_DA"`
	DefaultDaycareDailyDa      int `mapstructure:"DEFAULT_DAYCARE_DAILY_DA"`
	DefaultPetshopCommissionPc int `mapstructure:"DEFAULT_PETSHOP_COMMISSION_PC"`

	// Fraud-analysis thresholds. Tunables, not constants: ops adjusts these
	// without a rebuild.
	AnalysisProCancelRatePct   int `mapstructure:"ANALYSIS_PRO_CANCEL_RATE_PCT"`
	AnalysisMinCompletionPct   int `mapstructure:"ANALYSIS_MIN_COMPLETION_PCT"`
	AnalysisMinBookingsForRate int `mapstructure:"ANALYSIS_MIN_BOOKINGS_FOR_RATE"`
	AnalysisGhostCompletions   int `mapstructure:"ANALYSIS_GHOST_COMPLETIONS"`
	AnalysisUserNoShowCount    int `mapstructure:"ANALYSIS_USER_NO_SHOW_COUNT"`
	AnalysisUserCancelRatePct  int `mapstructure:"ANALYSIS_USER_CANCEL_RATE_PCT"`

	// Booking lifecycle sweep.
	GraceAfterEndHours int `mapstructure:"GRACE_AFTER_END_HOURS"`
	GracePeriodDays    int `mapstructure:"GRACE_PERIOD_DAYS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_OTP_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "pawhub")

	viper.SetDefault("DEFAULT_VET_COMMISSION_DA", 100)
	viper.SetDefault("DEFAULT_DAYCARE_HOURLY_DA", 10)
	viper.SetDefault("DEFAULT_DAYCARE_DAILY_DA", 100)
	viper.SetDefault("DEFAULT_PETSHOP_COMMISSION_PC", 5)

	viper.SetDefault("ANALYSIS_PRO_CANCEL_RATE_PCT", 15)
	viper.SetDefault("ANALYSIS_MIN_COMPLETION_PCT", 50)
	viper.SetDefault("ANALYSIS_MIN_BOOKINGS_FOR_RATE", 5)
	viper.SetDefault("ANALYSIS_GHOST_COMPLETIONS", 3)
	viper.SetDefault("ANALYSIS_USER_NO_SHOW_COUNT", 3)
	viper.SetDefault("ANALYSIS_USER_CANCEL_RATE_PCT", 50)

	viper.SetDefault("GRACE_AFTER_END_HOURS", 4)
	viper.SetDefault("GRACE_PERIOD_DAYS", 7)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
