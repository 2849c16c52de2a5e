package auth

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"disiplinku_backend/internals/constants"
	helperAuth "disiplinku_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(ctx context.Context, rawToken string) (bool, error) // true = token sudah logout
	AllowCookieFallback bool                                                      // pakai cookie access_token jika tidak ada Bearer
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		// 3) Cek blacklist (opsional)
		if o.BlacklistChecker != nil {
			black, err := o.BlacklistChecker(c.UserContext(), raw)
			if err != nil {
				log.Printf("[WARN] cek blacklist gagal: %v", err)
			} else if black {
				return fiber.NewError(fiber.StatusUnauthorized, "Sesi sudah keluar. Silakan login lagi.")
			}
		}

		userID := strClaim(claims, "sub")
		if userID == "" {
			userID = strClaim(claims, "id")
		}
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		role := strClaim(claims, "role")
		if !constants.IsValidRole(role) {
			role = constants.RoleUser
		}

		c.Locals(helperAuth.LocUserID, userID)
		c.Locals(helperAuth.LocUserName, strClaim(claims, "name"))
		c.Locals(helperAuth.LocUserRole, role)
		c.Locals(helperAuth.LocRawToken, raw)
		if exp, ok := claims["exp"].(float64); ok {
			c.Locals(helperAuth.LocTokenExp, time.Unix(int64(exp), 0).UTC())
		}

		return c.Next()
	}
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
