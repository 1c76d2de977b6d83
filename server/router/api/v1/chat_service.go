package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/pkg/errors"

	"github.com/mentio/mentio/chatbot"
)

type turnRequest struct {
	Message string `json:"message"`
}

func (s *APIV1Service) registerChatRoutes(e *echo.Echo) {
	e.POST("/api/v1/conversations/:uid/turn", s.handleTurn)
}

// handleTurn runs one chat turn and relays the generated answer as an SSE
// stream. Rejections before the first fragment map to plain HTTP errors;
// afterwards the stream simply ends.
func (s *APIV1Service) handleTurn(c *echo.Context) error {
	var req turnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body is required")
	}

	stream := &sseStream{rw: c.Response()}
	completed, err := s.Orchestrator.BeginTurn(c.Request().Context(), chatbot.TurnRequest{
		Token:           bearerToken(c),
		ConversationUID: c.Param("uid"),
		Message:         req.Message,
	}, stream)
	if err != nil {
		// By contract a non-nil error means nothing was relayed yet.
		var turnErr *chatbot.Error
		if errors.As(err, &turnErr) {
			return echo.NewHTTPError(statusForCode(turnErr.Code), messageForCode(turnErr.Code))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// A turn cut short mid-stream ends without a completion frame; the
	// client must not take a truncated answer for a finished one.
	if completed {
		stream.done(c.Param("uid"))
	}
	return nil
}

func statusForCode(code chatbot.Code) int {
	switch code {
	case chatbot.CodeUnauthorized:
		return http.StatusUnauthorized
	case chatbot.CodeConversationNotFound:
		return http.StatusNotFound
	case chatbot.CodeQuotaExceeded:
		return http.StatusForbidden
	case chatbot.CodeEntitlementUnavailable:
		return http.StatusServiceUnavailable
	case chatbot.CodeBackendFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func messageForCode(code chatbot.Code) string {
	switch code {
	case chatbot.CodeUnauthorized:
		return "unauthorized"
	case chatbot.CodeConversationNotFound:
		return "conversation not found"
	case chatbot.CodeQuotaExceeded:
		return "credit quota exceeded"
	case chatbot.CodeEntitlementUnavailable:
		return "subscription state is currently unavailable"
	case chatbot.CodeBackendFailure:
		return "generation backend failed"
	default:
		return "internal error"
	}
}

// sseStream writes text/event-stream frames. Headers go out lazily with the
// first fragment so pre-stream rejections can still use plain HTTP errors.
type sseStream struct {
	rw      http.ResponseWriter
	started bool
}

func (w *sseStream) start() {
	w.rw.Header().Set("Content-Type", "text/event-stream")
	w.rw.Header().Set("Cache-Control", "no-cache")
	w.rw.Header().Set("Connection", "keep-alive")
	w.rw.Header().Set("X-Accel-Buffering", "no")
	w.rw.WriteHeader(http.StatusOK)
	w.started = true
}

// Fragment relays one generated fragment to the caller. Implements
// chatbot.FragmentSink.
func (w *sseStream) Fragment(_ context.Context, text string) error {
	if !w.started {
		w.start()
	}
	return w.emit("token", text)
}

// done terminates the stream. Safe to call when nothing was streamed.
func (w *sseStream) done(conversationUID string) {
	if !w.started {
		w.start()
	}
	_ = w.emit("done", conversationUID)
}

func (w *sseStream) emit(eventType, payload string) error {
	data, _ := json.Marshal(map[string]string{"type": eventType, "content": payload})
	if _, err := fmt.Fprintf(w.rw, "data: %s\n\n", data); err != nil {
		return err
	}
	if f, ok := w.rw.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
