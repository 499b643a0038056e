package config

import (
	"os"
	"time"

	"generosity-backend/internal/api/handlers"
	"generosity-backend/internal/api/routes"
	"generosity-backend/internal/middleware"
	"generosity-backend/internal/utils"
	"generosity-backend/internal/utils/storage"
	"generosity-backend/pkg/admin"
	"generosity-backend/pkg/crisisalert"
	"generosity-backend/pkg/donation"
	"generosity-backend/pkg/feedback"
	"generosity-backend/pkg/jwt"
	"generosity-backend/pkg/user"
	"generosity-backend/pkg/warning"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	feedbackRepository := feedback.NewFeedbackRepository(db)
	warningRepository := warning.NewWarningRepository(db)
	alertRepository := crisisalert.NewCrisisAlertRepository(db)
	adminRepository := admin.NewAdminRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	donationService := donation.NewDonationService(donationRepository, s3)
	feedbackService := feedback.NewFeedbackService(feedbackRepository, donationRepository, userRepository)
	warningService := warning.NewWarningService(warningRepository)
	alertService := crisisalert.NewCrisisAlertService(alertRepository, crisisalert.NewDisasterFetcher())
	adminService := admin.NewAdminService(adminRepository, warningRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, validator)
	warningHandler := handlers.NewWarningHandler(warningService)
	alertHandler := handlers.NewCrisisAlertHandler(alertService, validator)
	adminHandler := handlers.NewAdminHandler(adminService, validator)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		DonationHandler:    donationHandler,
		FeedbackHandler:    feedbackHandler,
		WarningHandler:     warningHandler,
		CrisisAlertHandler: alertHandler,
		AdminHandler:       adminHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
