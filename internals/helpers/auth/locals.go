package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"disiplinku_backend/internals/constants"
)

/* ============================================
   Locals Keys (diisi middleware AuthJWT)
============================================ */

const (
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocUserRole = "userRole"
	LocRawToken = "raw_token"
	LocTokenExp = "token_exp"
)

// GetUserIDFromToken: 401 kalau request belum terautentikasi.
func GetUserIDFromToken(c *fiber.Ctx) (string, error) {
	if s, ok := c.Locals(LocUserID).(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s), nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user tidak ditemukan di token")
}

// UserIDPtr versi opsional untuk kolom created_by.
func UserIDPtr(c *fiber.Ctx) *string {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}

func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocUserRole).(string)
	return s
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetRole(c) == constants.RoleAdmin
}

// EnsureAdmin dipakai di handler yang campuran (sebagian aksi admin-only).
func EnsureAdmin(c *fiber.Ctx, feature string) error {
	if !IsAdmin(c) {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
	}
	return nil
}
