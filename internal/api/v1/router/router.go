package router

import (
	"context"
	"net/http"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/dynamo"
	"app/internal/middleware"
	"app/internal/pubsub"
	dynamorepo "app/internal/repository/dynamo"
	"app/internal/service"
	"app/internal/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the external clients, repositories, services and handlers into an
// http.Handler, bootstrapping the course catalog on the way.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, error) {
	ctx := context.Background()
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Build the shared AWS config
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load AWS config")
		return nil, err
	}

	// 2. Initialize DynamoDB client and ensure the managed tables exist.
	// The students table is expected to be provisioned out of band.
	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	if err := dynamo.EnsureTable(ctx, dynamoClient, cfg.CoursesTable, "name", logger); err != nil {
		logger.Error().Err(err).Msg("Failed to ensure courses table")
		return nil, err
	}
	if err := dynamo.EnsureTable(ctx, dynamoClient, cfg.UsersTable, "username", logger); err != nil {
		logger.Error().Err(err).Msg("Failed to ensure users table")
		return nil, err
	}

	// 3. Initialize S3 client
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWSEndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
			o.UsePathStyle = true
		}
	})
	uploader := storage.NewS3Uploader(s3Client, cfg.S3Bucket, cfg.S3PublicDomain)

	// 4. Initialize the notification publisher. An empty topic disables the
	// notification path entirely.
	var publisher pubsub.Publisher
	if cfg.NotificationTopic != "" {
		p, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
			return nil, err
		}
		publisher = p
	} else {
		logger.Info().Msg("No notification topic configured, notifications disabled")
	}

	// 5. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 6. Initialize repositories & services & handlers
	studentRepo := dynamorepo.NewStudentRepository(dynamoClient, cfg.StudentsTable)
	courseRepo := dynamorepo.NewCourseRepository(dynamoClient, cfg.CoursesTable)
	userRepo := dynamorepo.NewUserRepository(dynamoClient, cfg.UsersTable)

	studentSvc := service.NewStudentService(studentRepo, uploader, publisher, cfg.NotificationTopic, logger)
	courseSvc := service.NewCourseService(courseRepo, logger)
	userSvc := service.NewUserService(userRepo, cfg.JWTSecret, logger)

	if err := courseSvc.SeedDefaultCourses(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to seed default courses")
		return nil, err
	}

	studentHandler := handler.NewStudentHandler(studentSvc, validate, logger)
	courseHandler := handler.NewCourseHandler(courseSvc, validate, logger)
	userHandler := handler.NewUserHandler(userSvc, validate, logger)
	dashboardHandler := handler.NewDashboardHandler(studentSvc, courseSvc, logger)

	// 7. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 8. Create ServeMux router
	mux := http.NewServeMux()
	apiV1Mux := http.NewServeMux()
	userHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	studentHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	courseHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	dashboardHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// 9. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), nil
}
