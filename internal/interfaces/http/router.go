package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	LeadUC    *usecase.LeadUseCase
	UserRepo  repository.UserRepository
	JWTSecret string
}

// Router registra las rutas de la API.
// Estado por petición: rutas públicas van directo al handler; rutas protegidas
// pasan por AuthMiddleware (verificación de token + re-resolución del usuario)
// y, donde aplica, RequireRole, antes de ejecutar.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret, deps.UserRepo))
	protected.Get("/me", authHandler.Me)

	// Leads (protegido, solo Admin o Sales)
	leads := protected.Group("/leads", RequireRole(entity.RoleAdmin, entity.RoleSales))
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Patch("/:id", leadHandler.Update)

	// Rutas no registradas responden 404 JSON, nunca la página por defecto.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Not found."})
	})
}

// ErrorHandler mapea cualquier error no recuperado a una respuesta JSON.
// Garantiza que siempre se produce una respuesta y que el detalle interno
// (SQL, stack) nunca llega al cliente: todo lo inesperado es un 500 genérico.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Server error."})
}
