package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend names accepted by the messaging selection values.
const (
	EventBackendSNS      = "AWS_SNS"
	EventBackendRabbitMQ = "RABBITMQ"
	QueueBackendSQS      = "AWS_SQS"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Messaging MessagingConfig `yaml:"messaging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	// Allow override via environment
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds the relational store connection settings
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// MessagingConfig holds the publisher/queue backend selection and the
// per-event topic and queue names.
type MessagingConfig struct {
	// Event selects the notification publisher backend: AWS_SNS or RABBITMQ.
	// Any other value falls back to the logging no-op publisher.
	Event string `yaml:"event"`
	// Queue selects the point-to-point queue backend: AWS_SQS.
	Queue string `yaml:"queue"`

	TopicCustomerCreated string `yaml:"topic_customer_created"`
	QueueCustomerCreated string `yaml:"queue_customer_created"`
	QueueCustomerDeleted string `yaml:"queue_customer_deleted"`

	AWS      AWSConfig      `yaml:"aws"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
}

// AWSConfig holds SNS/SQS client settings. Endpoint overrides the broker
// endpoint for LocalStack/sandbox testing; empty means the real AWS endpoint.
type AWSConfig struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"`
}

// RabbitMQConfig holds AMQP broker settings for the RabbitMQ publisher.
type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Messaging.TopicCustomerCreated == "" {
		cfg.Messaging.TopicCustomerCreated = "customer-created"
	}
	if cfg.Messaging.QueueCustomerCreated == "" {
		cfg.Messaging.QueueCustomerCreated = "customer-created-queue"
	}
	if cfg.Messaging.QueueCustomerDeleted == "" {
		cfg.Messaging.QueueCustomerDeleted = "customer-deleted-queue"
	}
	if cfg.Messaging.AWS.Region == "" {
		cfg.Messaging.AWS.Region = "us-east-1"
	}
	if cfg.Messaging.RabbitMQ.Exchange == "" {
		cfg.Messaging.RabbitMQ.Exchange = "customer-events"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if v := os.Getenv("MESSAGE_EVENT"); v != "" {
		cfg.Messaging.Event = v
	}
	if v := os.Getenv("MESSAGE_QUEUE"); v != "" {
		cfg.Messaging.Queue = v
	}
	if v := os.Getenv("EVENT_TOPIC_CUSTOMER_CREATED"); v != "" {
		cfg.Messaging.TopicCustomerCreated = v
	}
	if v := os.Getenv("QUEUE_CUSTOMER_CREATED"); v != "" {
		cfg.Messaging.QueueCustomerCreated = v
	}
	if v := os.Getenv("QUEUE_CUSTOMER_DELETED"); v != "" {
		cfg.Messaging.QueueCustomerDeleted = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Messaging.AWS.Region = v
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.Messaging.AWS.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.Messaging.AWS.SecretKey = v
	}
	if v := os.Getenv("AWS_ENDPOINT_URL"); v != "" {
		cfg.Messaging.AWS.Endpoint = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.Messaging.RabbitMQ.URL = v
	}
	if v := os.Getenv("RABBITMQ_EXCHANGE"); v != "" {
		cfg.Messaging.RabbitMQ.Exchange = v
	}

	return cfg, nil
}
