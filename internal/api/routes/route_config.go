package routes

import (
	"generosity-backend/domain"
	"generosity-backend/internal/api/handlers"
	"generosity-backend/internal/middleware"
	"generosity-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	DonationHandler    handlers.DonationHandler
	FeedbackHandler    handlers.FeedbackHandler
	WarningHandler     handlers.WarningHandler
	CrisisAlertHandler handlers.CrisisAlertHandler
	AdminHandler       handlers.AdminHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Donations()
	c.Feedbacks()
	c.Warnings()
	c.CrisisAlerts()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/refresh", c.UserHandler.RefreshToken)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Donations() {
	// Anonymous browsing of available donations.
	c.App.Get("/api/v1/public/donations", c.DonationHandler.GetPublicDonations)

	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		donations.Get("", c.DonationHandler.GetDonations)
		donations.Post("", c.Middleware.RoleMiddleware(domain.RoleDonor), c.DonationHandler.CreateDonation)
		donations.Get("/claimed", c.Middleware.RoleMiddleware(domain.RoleRecipient), c.DonationHandler.GetClaimedDonations)
		donations.Get("/:id", c.DonationHandler.GetDonationByID)
		donations.Post("/:id/claim", c.Middleware.RoleMiddleware(domain.RoleRecipient), c.DonationHandler.ClaimDonation)
		donations.Post("/:id/cancel", c.Middleware.RoleMiddleware(domain.RoleDonor), c.DonationHandler.CancelDonation)
		donations.Post("/claims/:id/collect", c.Middleware.RoleMiddleware(domain.RoleDonor), c.DonationHandler.CollectClaim)
		donations.Post("/claims/:id/cancel", c.Middleware.RoleMiddleware(domain.RoleRecipient), c.DonationHandler.CancelClaim)
	}
}

func (c *Config) Feedbacks() {
	feedbacks := c.App.Group("/api/v1/feedbacks", c.Middleware.AuthMiddleware(c.JWTService))
	{
		feedbacks.Post("", c.Middleware.RoleMiddleware(domain.RoleRecipient), c.FeedbackHandler.CreateFeedback)
		feedbacks.Get("", c.Middleware.RoleMiddleware(domain.RoleDonor), c.FeedbackHandler.GetMyFeedbacks)
	}
}

func (c *Config) Warnings() {
	// Any authenticated user may poll their warnings; recipients simply get
	// an empty list. Scoping to the owner happens in the service.
	warnings := c.App.Group("/api/v1/donor/warnings", c.Middleware.AuthMiddleware(c.JWTService))
	{
		warnings.Get("", c.WarningHandler.GetWarnings)
		warnings.Post("/:id/dismiss", c.WarningHandler.DismissWarning)
	}
}

func (c *Config) CrisisAlerts() {
	alerts := c.App.Group("/api/v1/user/crisis-alerts", c.Middleware.AuthMiddleware(c.JWTService))
	{
		alerts.Get("", c.CrisisAlertHandler.GetActiveAlerts)
		alerts.Post("/send", c.CrisisAlertHandler.SendAlert)
		alerts.Post("/:id/dismiss", c.CrisisAlertHandler.DismissAlert)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleAdmin),
	)
	{
		admin.Get("/bad-donors", c.AdminHandler.GetBadDonors)
		admin.Post("/donors/:id/:action", c.AdminHandler.ApplyDonorAction)
		admin.Get("/donors/:id/warnings", c.AdminHandler.GetDonorWarnings)

		admin.Get("/crisis-alerts", c.CrisisAlertHandler.GetAlerts)
		admin.Post("/crisis-alerts/send", c.CrisisAlertHandler.SendAlert)
		admin.Put("/crisis-alerts/:id", c.CrisisAlertHandler.UpdateAlert)
		admin.Delete("/crisis-alerts/:id", c.CrisisAlertHandler.DeleteAlert)
		admin.Post("/crisis-alerts/refresh-system", c.CrisisAlertHandler.RefreshSystemAlerts)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
