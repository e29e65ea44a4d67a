package echo

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/admissions/internal/security"
)

// CapabilityEditApplications guards every bulk import surface.
const CapabilityEditApplications = "applications:edit"

type AuthMiddleware struct {
	tokens *security.JWTProvider
}

func NewAuthMiddleware(tokens *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.JSON(http.StatusUnauthorized, apiResponse{Error: &errorBody{
				Code:    "unauthorized",
				Message: "missing or malformed bearer token",
			}})
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, apiResponse{Error: &errorBody{
				Code:    "unauthorized",
				Message: "invalid or expired token",
			}})
		}

		c.Set("user_id", claims.Subject)
		c.Set("capabilities", claims.Capabilities)
		return next(c)
	}
}

func RequireCapability(capability string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			granted, _ := c.Get("capabilities").([]string)
			for _, g := range granted {
				if g == capability {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, apiResponse{Error: &errorBody{
				Code:    "forbidden",
				Message: "missing capability: " + capability,
			}})
		}
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}
