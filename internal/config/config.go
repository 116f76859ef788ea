package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type WithdrawalConfig struct {
	Env            string `yaml:"env"`
	HTTPServer     `yaml:"http_server"`
	WithdrawalDB   `yaml:"withdrawal_db"`
	Redis          `yaml:"redis"`
	LogConfig      `yaml:"log_config"`
	PaymentService `yaml:"payment-service"`
	KafkaService   `yaml:"kafka-service"`
	Rotation       `yaml:"rotation"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type WithdrawalDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type PaymentService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaService struct {
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	EventsTopic   string `yaml:"events_topic"`
	RequestsTopic string `yaml:"requests_topic"`
	GroupID       string `yaml:"group_id"`
}

type Rotation struct {
	ReconcileIntervalSeconds int `yaml:"reconcile_interval_seconds"`
}

func MustLoad() *WithdrawalConfig {

	// Processing env config variable and file
	configPath := os.Getenv("WITHDRAWAL_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("WITHDRAWAL_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg WithdrawalConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
