package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// AWS settings (record store + blob store)
	AWSAccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" required:"true"`
	AWSSecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" required:"true"`
	AWSRegion          string `envconfig:"AWS_REGION" required:"true"`
	StudentsTable      string `envconfig:"AWS_DYNAMODB_TABLE" required:"true"`
	CoursesTable       string `envconfig:"AWS_DYNAMODB_COURSES_TABLE" default:"Courses"`
	UsersTable         string `envconfig:"AWS_DYNAMODB_USERS_TABLE" default:"Users"`
	S3Bucket           string `envconfig:"AWS_S3_BUCKET_NAME" required:"true"`
	S3PublicDomain     string `envconfig:"AWS_S3_PUBLIC_DOMAIN" default:"s3.amazonaws.com"`
	// AWSEndpointURL points the SDK at a local stack (e.g. LocalStack) when set.
	AWSEndpointURL string `envconfig:"AWS_ENDPOINT_URL"`

	// Notification settings. An empty topic disables notifications entirely.
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	NotificationTopic  string `envconfig:"NOTIFICATION_TOPIC"`
	PubSubEmulatorHost string `envconfig:"PUBSUB_EMULATOR_HOST"`

	// Server settings
	Port        string `envconfig:"PORT" default:"8080"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	Environment string `envconfig:"ENV" default:"development"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
