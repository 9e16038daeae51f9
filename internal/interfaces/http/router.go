package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/jhoicas/Quotation-api/internal/application/auth"
	"github.com/jhoicas/Quotation-api/internal/application/quotation"
	"github.com/jhoicas/Quotation-api/internal/application/suggestion"
	"github.com/jhoicas/Quotation-api/pkg/logger"
)

// RouterDeps dependencies of the router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Ledger    *quotation.Ledger
	Registry  *suggestion.Registry
	JWTSecret string
	Logger    *logger.Logger
}

// Router registers the API routes and the 404 fallback. Register anything
// that must run before the fallback (swagger, static files) first.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions}, ","),
		AllowHeaders: "Content-Type,Authorization," + HeaderAdminResetKey,
	}))

	api := app.Group("/api")
	api.Get("/health", Health)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log.Component("auth"))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/admin-reset-password", authHandler.AdminResetPassword)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Put("/updateprofile", AuthMiddleware(deps.JWTSecret), authHandler.UpdateProfile)

	// Quotations; the filter and pdf routes go before /:id
	quotations := api.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.Ledger, log.Component("quotations"))
	quotations.Get("/segment/:segment", quotationHandler.ListBySegment)
	quotations.Get("/user/:username", quotationHandler.ListByUser)
	quotations.Get("/:id/pdf", quotationHandler.PDF)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Put("/:id", quotationHandler.Update)
	quotations.Delete("/:id", quotationHandler.Delete)

	// Custom suggestions; fixed paths go before /:type
	suggestions := api.Group("/custom-suggestions")
	suggestionHandler := NewSuggestionHandler(deps.Registry, log.Component("suggestions"))
	suggestions.Get("/", suggestionHandler.List)
	suggestions.Post("/batch", suggestionHandler.CreateBatch)
	suggestions.Post("/import", suggestionHandler.Import)
	suggestions.Get("/export", suggestionHandler.Export)
	suggestions.Get("/:type", suggestionHandler.ListByType)
	suggestions.Post("/", suggestionHandler.Create)
	suggestions.Delete("/:type/:id", suggestionHandler.Delete)

	app.Use(NotFound)
}

// ErrorHandler renders errors escaping the handlers (fiber errors, recovered
// panics) with the same envelope as the handlers.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return errorJSON(c, fe.Code, "HTTP_ERROR", fe.Message)
		}
		return internalError(c, log, err)
	}
}
