package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/jwt"
)

// LocalUser clave de c.Locals donde el middleware deja el usuario autenticado.
const LocalUser = "current_user"

// AuthMiddleware valida el Bearer Token y re-resuelve al usuario CON sus roles
// desde la base de datos por cada petición. El claim de roles del token no se
// usa para autorizar: un rol revocado deja de valer de inmediato, no al expirar
// el token. Un subject que ya no resuelve a un usuario (borrado tras emitir el
// token) recibe 401.
//
// Las tres causas de rechazo responden 401 con mensajes genéricos, sin detalle
// de qué verificación falló más allá de la ausencia del header.
func AuthMiddleware(jwtSecret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Missing bearer token."})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Missing bearer token."})
		}

		userID, _, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid token."})
		}

		user, err := users.FindWithRoles(c.Context(), userID)
		if err != nil {
			return err
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "User not found."})
		}

		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireRole autoriza contra el conjunto vivo de roles del usuario (puesto en
// Locals por AuthMiddleware): basta con que uno intersecte con los permitidos.
// Intersección vacía responde 403.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Missing bearer token."})
		}
		if !user.HasAnyRole(allowed...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Access denied."})
		}
		return c.Next()
	}
}

// CurrentUser devuelve el usuario autenticado del contexto (después de AuthMiddleware).
func CurrentUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}
