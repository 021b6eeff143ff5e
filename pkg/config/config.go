package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	AWSRegion        string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	OrderTableName   string `envconfig:"ORDER_TABLE_NAME" default:"orders"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT" default:""`
	KafkaBrokers     string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`

	ProductServiceURL string        `envconfig:"PRODUCT_SERVICE_URL" default:"http://localhost:8081"`
	PaymentServiceURL string        `envconfig:"PAYMENT_SERVICE_URL" default:"http://localhost:8082"`
	ClientTimeout     time.Duration `envconfig:"CLIENT_TIMEOUT" default:"5s"`
	ClientMaxRetries  int           `envconfig:"CLIENT_MAX_RETRIES" default:"2"`

	// Circuit breaker policy for the order-details read path.
	BreakerFailureThreshold uint32        `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"5"`
	BreakerInterval         time.Duration `envconfig:"BREAKER_INTERVAL" default:"60s"`
	BreakerCooldown         time.Duration `envconfig:"BREAKER_COOLDOWN" default:"30s"`
	BreakerHalfOpenRequests uint32        `envconfig:"BREAKER_HALF_OPEN_REQUESTS" default:"1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
