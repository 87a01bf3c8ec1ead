package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	AWSRegion        string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	ProductTableName string `envconfig:"PRODUCT_TABLE_NAME" default:"products-table"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT" default:""` // set for local DynamoDB
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	LocalMode        bool   `envconfig:"LOCAL_MODE" default:"true"` // in-memory store, no AWS
	KafkaBrokers     string `envconfig:"KAFKA_BROKERS" default:""`  // empty disables events
	KafkaTopic       string `envconfig:"KAFKA_TOPIC" default:"catalog-events"`
	CacheEnabled     bool   `envconfig:"CACHE_ENABLED" default:"false"`
	RedisAddr        string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
