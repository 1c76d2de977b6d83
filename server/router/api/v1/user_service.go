package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"
)

type usageResponse struct {
	MessageCount int `json:"messageCount"`
	MonthlyLimit int `json:"monthlyLimit"`
}

func (s *APIV1Service) registerUserRoutes(e *echo.Echo) {
	e.GET("/api/v1/users/:id/usage", s.getUserUsage)
}

// getUserUsage reports a user's current-month assistant message count. The
// endpoint serves the main application, guarded by the static service key
// instead of a user token.
func (s *APIV1Service) getUserUsage(c *echo.Context) error {
	if s.Profile.ServiceAPIKey == "" || bearerToken(c) != s.Profile.ServiceAPIKey {
		return echo.NewHTTPError(http.StatusForbidden, "invalid service key")
	}
	raw, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || raw <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	count, err := s.Quota.Usage(c.Request().Context(), int32(raw))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, usageResponse{
		MessageCount: count,
		MonthlyLimit: s.Quota.Limit(),
	})
}
