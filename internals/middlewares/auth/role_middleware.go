package auth

import (
	"github.com/gofiber/fiber/v2"
)

// OnlyRoles membatasi akses berdasar klaim role di token.
func OnlyRoles(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Akses ditolak untuk role ini")
	}
}

// OnlyAdmin shortcut untuk endpoint manajemen.
func OnlyAdmin() fiber.Handler {
	return OnlyRoles("admin")
}
