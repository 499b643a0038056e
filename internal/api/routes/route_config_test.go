package routes

import (
	"context"
	"net/http/httptest"
	"testing"

	"generosity-backend/domain"
	"generosity-backend/entities"
	"generosity-backend/internal/api/handlers"
	"generosity-backend/internal/middleware"
	"generosity-backend/pkg/jwt"
	"generosity-backend/pkg/warning"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWarningRepository struct{}

func (s *stubWarningRepository) CreateWarning(ctx context.Context, w *entities.Warning) error {
	return nil
}

func (s *stubWarningRepository) GetUserWarnings(ctx context.Context, userID string) ([]*entities.Warning, error) {
	return nil, nil
}

func (s *stubWarningRepository) GetWarningByID(ctx context.Context, id string) (*entities.Warning, error) {
	return nil, nil
}

func (s *stubWarningRepository) MarkWarningRead(ctx context.Context, id string) error {
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, jwt.JWTService) {
	t.Helper()
	t.Setenv("JWT_SECRET", "route-test-secret")

	app := fiber.New()
	jwtService := jwt.NewJWTService()

	cfg := Config{
		App:                app,
		UserHandler:        handlers.NewUserHandler(nil, nil),
		DonationHandler:    handlers.NewDonationHandler(nil, nil),
		FeedbackHandler:    handlers.NewFeedbackHandler(nil, nil),
		WarningHandler:     handlers.NewWarningHandler(warning.NewWarningService(&stubWarningRepository{})),
		CrisisAlertHandler: handlers.NewCrisisAlertHandler(nil, nil),
		AdminHandler:       handlers.NewAdminHandler(nil, nil),
		Middleware:         middleware.NewMiddleware(),
		JWTService:         jwtService,
	}
	cfg.Setup()

	return app, jwtService
}

// Warnings are readable by any authenticated user, not donors alone: the
// recipient view polls the same endpoint and expects its (possibly empty)
// list, not a 403.
func TestWarningsRouteOpenToAllRoles(t *testing.T) {
	app, jwtService := newTestApp(t)

	for _, role := range []string{domain.RoleDonor, domain.RoleRecipient, domain.RoleAdmin} {
		t.Run(role, func(t *testing.T) {
			token := jwtService.GenerateAccessToken(uuid.NewString(), role)

			req := httptest.NewRequest(fiber.MethodGet, "/api/v1/donor/warnings", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		})
	}
}

func TestWarningsRouteRequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/donor/warnings", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
