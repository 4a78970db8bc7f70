package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	pkgtls "github.com/Bentshims/Fastmoney/pkg/tls"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	AWSRegion string `envconfig:"AWS_REGION" default:"eu-west-3"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// Local mode runs against DynamoDB Local without AWS credentials.
	LocalMode      bool   `envconfig:"LOCAL_MODE" default:"true"`
	DynamoEndpoint string `envconfig:"DYNAMO_ENDPOINT" default:"http://localhost:8000"`

	BusinessTableName string `envconfig:"BUSINESS_TABLE_NAME" default:"businesses-table"`
	UserTableName     string `envconfig:"USER_TABLE_NAME" default:"users-table"`
	EmployeeTableName string `envconfig:"EMPLOYEE_TABLE_NAME" default:"employees-table"`
	ProductTableName  string `envconfig:"PRODUCT_TABLE_NAME" default:"products-table"`
	SaleTableName     string `envconfig:"SALE_TABLE_NAME" default:"sales-table"`

	UserEmailIndex        string `envconfig:"USER_EMAIL_INDEX" default:"email-index"`
	EmployeeEmailIndex    string `envconfig:"EMPLOYEE_EMAIL_INDEX" default:"email-index"`
	EmployeeBusinessIndex string `envconfig:"EMPLOYEE_BUSINESS_INDEX" default:"business-index"`
	ProductBusinessIndex  string `envconfig:"PRODUCT_BUSINESS_INDEX" default:"business-index"`
	SaleBusinessIndex     string `envconfig:"SALE_BUSINESS_INDEX" default:"business-created-index"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"supersecret"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"sale-events"`

	TLS pkgtls.TLSConfig
}

func Load() (*Config, error) {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
