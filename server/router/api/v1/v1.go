// Package v1 exposes the HTTP API surface of the mentio server.
package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/mentio/mentio/chatbot"
	"github.com/mentio/mentio/server/auth"
	"github.com/mentio/mentio/server/profile"
	"github.com/mentio/mentio/store"
)

// APIV1Service bundles the dependencies of the /api/v1 handlers.
type APIV1Service struct {
	Profile       *profile.Profile
	Store         *store.Store
	Authenticator *auth.Authenticator
	Orchestrator  *chatbot.Orchestrator
	Quota         *chatbot.QuotaGate
}

// NewAPIV1Service wires the v1 handlers.
func NewAPIV1Service(p *profile.Profile, s *store.Store, authenticator *auth.Authenticator, orchestrator *chatbot.Orchestrator, quota *chatbot.QuotaGate) *APIV1Service {
	return &APIV1Service{
		Profile:       p,
		Store:         s,
		Authenticator: authenticator,
		Orchestrator:  orchestrator,
		Quota:         quota,
	}
}

// Register attaches every v1 route to the echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	s.registerConversationRoutes(e)
	s.registerChatRoutes(e)
	s.registerUserRoutes(e)
}

// bearerToken extracts the bearer credential from the Authorization header,
// or "" when absent.
func bearerToken(c *echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// requireAuth resolves the caller's user id from the bearer token.
func (s *APIV1Service) requireAuth(c *echo.Context) (int32, string, error) {
	token := bearerToken(c)
	if token == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "authorization header is required")
	}
	userID, err := s.Authenticator.ResolveUserID(c.Request().Context(), token)
	if err != nil {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return userID, token, nil
}
