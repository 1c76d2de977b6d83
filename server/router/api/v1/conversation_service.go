package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"
	"github.com/lithammer/shortuuid/v4"

	"github.com/mentio/mentio/store"
)

// listLimit caps the conversation list endpoint.
const listLimit = 30

type conversationResponse struct {
	UID       string `json:"uid"`
	CreatedTs int64  `json:"createdTs"`
}

type messageResponse struct {
	ID        int32  `json:"id"`
	Kind      string `json:"kind"`
	Content   string `json:"content"`
	CreatedTs int64  `json:"createdTs"`
}

func (s *APIV1Service) registerConversationRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/conversations")
	g.GET("", s.listConversations)
	g.POST("", s.createConversation)
	g.GET("/:uid", s.getConversation)
	g.GET("/:uid/messages", s.listConversationMessages)
}

func (s *APIV1Service) createConversation(c *echo.Context) error {
	userID, _, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	conversation, err := s.Store.CreateConversation(c.Request().Context(), &store.Conversation{
		UID:       shortuuid.New(),
		CreatorID: userID,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, conversationResponse{
		UID:       conversation.UID,
		CreatedTs: conversation.CreatedTs,
	})
}

func (s *APIV1Service) listConversations(c *echo.Context) error {
	userID, _, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	limit := listLimit
	conversations, err := s.Store.ListConversations(c.Request().Context(), &store.FindConversation{
		CreatorID: &userID,
		Limit:     &limit,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]conversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		resp = append(resp, conversationResponse{
			UID:       conversation.UID,
			CreatedTs: conversation.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) getConversation(c *echo.Context) error {
	userID, _, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	conversation, err := s.findOwnedConversation(c, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conversationResponse{
		UID:       conversation.UID,
		CreatedTs: conversation.CreatedTs,
	})
}

func (s *APIV1Service) listConversationMessages(c *echo.Context) error {
	userID, _, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	conversation, err := s.findOwnedConversation(c, userID)
	if err != nil {
		return err
	}

	find := &store.FindMessage{
		ConversationID: &conversation.ID,
		CreatorID:      &userID,
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		find.Limit = &limit
	}
	if raw := c.QueryParam("before"); raw != "" {
		before, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || before <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid before cursor")
		}
		beforeID := int32(before)
		find.BeforeID = &beforeID
	}

	messages, err := s.Store.ListMessages(c.Request().Context(), find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, messageResponse{
			ID:        m.ID,
			Kind:      m.Kind.String(),
			Content:   m.Content,
			CreatedTs: m.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// findOwnedConversation loads the :uid conversation and checks ownership.
func (s *APIV1Service) findOwnedConversation(c *echo.Context, userID int32) (*store.Conversation, error) {
	uid := c.Param("uid")
	conversation, err := s.Store.GetConversation(c.Request().Context(), &store.FindConversation{
		UID:       &uid,
		CreatorID: &userID,
	})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if conversation == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "conversation not found")
	}
	return conversation, nil
}
