package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	AMQP     AMQPConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type AMQPConfig struct {
	URL      string
	Exchange string
	Enabled  bool
}

// BookingConfig carries the business rules the pricing and capacity core
// needs: which weekdays count as weekend pricing, the add-on unlock
// threshold, and event defaults.
type BookingConfig struct {
	WeekendDays          []string
	AddOnMinPersons      int
	AddOnPricePerPerson  float64
	DefaultCapacity      int
	Currency             string
	VoucherCodeAttempts  int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("AMQP_EXCHANGE", "bookings")
	viper.SetDefault("AMQP_ENABLED", false)
	viper.SetDefault("BOOKING_WEEKEND_DAYS", "Friday,Saturday")
	viper.SetDefault("BOOKING_ADDON_MIN_PERSONS", 25)
	viper.SetDefault("BOOKING_ADDON_PRICE_PER_PERSON", 15.0)
	viper.SetDefault("BOOKING_DEFAULT_CAPACITY", 230)
	viper.SetDefault("BOOKING_CURRENCY", "EUR")
	viper.SetDefault("VOUCHER_CODE_ATTEMPTS", 5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		AMQP: AMQPConfig{
			URL:      viper.GetString("AMQP_URL"),
			Exchange: viper.GetString("AMQP_EXCHANGE"),
			Enabled:  viper.GetBool("AMQP_ENABLED"),
		},
		Booking: BookingConfig{
			WeekendDays:         splitAndTrim(viper.GetString("BOOKING_WEEKEND_DAYS")),
			AddOnMinPersons:     viper.GetInt("BOOKING_ADDON_MIN_PERSONS"),
			AddOnPricePerPerson: viper.GetFloat64("BOOKING_ADDON_PRICE_PER_PERSON"),
			DefaultCapacity:     viper.GetInt("BOOKING_DEFAULT_CAPACITY"),
			Currency:            viper.GetString("BOOKING_CURRENCY"),
			VoucherCodeAttempts: viper.GetInt("VOUCHER_CODE_ATTEMPTS"),
		},
	}

	return config, nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
