package main

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	"cityportal/internal/config"
	"cityportal/internal/database"
	"cityportal/internal/domain/auth"
	"cityportal/internal/domain/library"
	"cityportal/internal/domain/media"
	"cityportal/internal/domain/news"
	"cityportal/internal/domain/notification"
	"cityportal/internal/domain/quiz"
	"cityportal/internal/domain/report"
	"cityportal/internal/domain/user"
	"cityportal/internal/middleware"
	"cityportal/internal/pkg/authz"
	jwtsvc "cityportal/internal/pkg/jwt"
	"cityportal/internal/pkg/upload"
	"cityportal/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db,
		&user.User{},
		&news.Article{},
		&library.Document{},
		&report.Category{},
		&report.Report{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.Choice{},
		&quiz.Attempt{},
		&quiz.Answer{},
		&notification.Device{},
	); err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal(err)
	}

	jwt := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	intake := upload.NewIntake(cfg.UploadDir)
	temp := upload.NewTempStore(cfg.UploadDir)

	var objectStore media.ObjectStore
	if cfg.S3Enabled() {
		client, err := storage.Connect(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3UseSSL)
		if err != nil {
			log.Fatal(err)
		}
		objectStore = storage.NewUploader(client, storage.Config{
			Bucket:  cfg.S3Bucket,
			BaseURL: cfg.S3BaseURL,
		})
	} else {
		log.Println("object storage disabled: S3_ENDPOINT or S3_BUCKET not set")
	}

	var messenger notification.Messenger
	if cfg.FirebaseCredentialsFile != "" {
		app, err := firebase.NewApp(context.Background(), nil,
			option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
		if err != nil {
			log.Fatal(err)
		}
		messenger, err = app.Messaging(context.Background())
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("push messaging disabled: FIREBASE_CREDENTIALS_FILE not set")
	}

	userRepo := user.NewRepository(db)
	newsRepo := news.NewRepository(db)
	libraryRepo := library.NewRepository(db)
	reportRepo := report.NewRepository(db)
	categoryRepo := report.NewCategoryRepository(db)
	quizRepo := quiz.NewRepository(db)
	deviceRepo := notification.NewRepository(db)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwt))
	userHandler := user.NewHandler(user.NewService(userRepo))
	newsHandler := news.NewHandler(news.NewService(newsRepo, intake, cfg.CDNBaseURL), temp)
	libraryHandler := library.NewHandler(library.NewService(libraryRepo, intake, cfg.CDNBaseURL), temp)
	reportHandler := report.NewHandler(report.NewService(reportRepo, categoryRepo, intake, cfg.CDNBaseURL), temp)
	quizHandler := quiz.NewHandler(quiz.NewService(quizRepo))
	notificationHandler := notification.NewHandler(notification.NewService(deviceRepo, messenger))
	mediaHandler := media.NewHandler(media.NewService(objectStore), temp)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS(os.Getenv("CORS_ORIGINS")))
	r.Use(middleware.ErrorLogger())

	r.Static("/uploads", cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		auth.RegisterPublicRoutes(v1, authHandler)
		news.RegisterPublicRoutes(v1, newsHandler)
		quiz.RegisterPublicRoutes(v1, quizHandler)
		report.RegisterPublicRoutes(v1, reportHandler)
		library.RegisterPublicRoutes(v1, libraryHandler)

		member := v1.Group("/")
		member.Use(middleware.Auth(jwt))
		{
			auth.RegisterMemberRoutes(member, authHandler)
			user.RegisterMemberRoutes(member, userHandler)
			notification.RegisterMemberRoutes(member, notificationHandler)

			quizMember := member.Group("/")
			quizMember.Use(middleware.RequirePermission("quiz", authz.ActionCreate))
			quiz.RegisterMemberRoutes(quizMember, quizHandler)

			reportMember := member.Group("/")
			reportMember.Use(middleware.RequirePermission("report", authz.ActionCreate))
			report.RegisterMemberRoutes(reportMember, reportHandler)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(jwt), middleware.AdminOnly())
		{
			user.RegisterAdminRoutes(admin, userHandler)
			news.RegisterAdminRoutes(admin, newsHandler)
			library.RegisterAdminRoutes(admin, libraryHandler)
			report.RegisterAdminRoutes(admin, reportHandler)
			quiz.RegisterAdminRoutes(admin, quizHandler)
			notification.RegisterAdminRoutes(admin, notificationHandler)
			media.RegisterAdminRoutes(admin, mediaHandler)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
