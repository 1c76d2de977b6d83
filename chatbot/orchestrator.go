// Package chatbot coordinates one chat turn: authorization, quota, placeholder
// persistence, history reconstruction, stream relay and finalization.
package chatbot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mentio/mentio/plugin/llm"
	"github.com/mentio/mentio/store"
)

// defaultFinalizeTimeout bounds the best-effort finalization attempt after
// the caller has gone away.
const defaultFinalizeTimeout = 5 * time.Second

// IdentityResolver validates a caller credential and yields the user id it
// was issued for.
type IdentityResolver interface {
	ResolveUserID(ctx context.Context, token string) (int32, error)
}

// EntitlementResolver reports whether the caller has a paid subscription.
// An error means the entitlement is unknown, which is never treated as
// "unpaid".
type EntitlementResolver interface {
	HasPaidSubscription(ctx context.Context, token string) (bool, error)
}

// FragmentSink receives generated text fragments as they arrive. A returned
// error means the caller is gone and no further fragments should be
// requested.
type FragmentSink interface {
	Fragment(ctx context.Context, text string) error
}

// TurnRequest is one inbound "begin turn" operation.
type TurnRequest struct {
	Token           string
	ConversationUID string
	Message         string
}

// Orchestrator runs the turn state machine.
type Orchestrator struct {
	store           *store.Store
	backend         llm.Backend
	identity        IdentityResolver
	entitlements    EntitlementResolver
	quota           *QuotaGate
	history         *HistoryBuilder
	persona         string
	finalizeTimeout time.Duration
}

// NewOrchestrator wires the turn orchestrator.
func NewOrchestrator(s *store.Store, backend llm.Backend, identity IdentityResolver, entitlements EntitlementResolver, quota *QuotaGate) *Orchestrator {
	return &Orchestrator{
		store:           s,
		backend:         backend,
		identity:        identity,
		entitlements:    entitlements,
		quota:           quota,
		history:         NewHistoryBuilder(s),
		persona:         Persona,
		finalizeTimeout: defaultFinalizeTimeout,
	}
}

// BeginTurn runs one turn end to end, relaying backend fragments to sink as
// they arrive. A non-nil error always carries a *Error and means nothing
// was relayed. The boolean reports whether generation ran to a clean end:
// a turn cut short by a disconnect or a post-output backend failure returns
// false with a nil error, and the transport must not signal completion.
func (o *Orchestrator) BeginTurn(ctx context.Context, req TurnRequest, sink FragmentSink) (bool, error) {
	turnID := uuid.NewString()

	// Authorizing.
	userID, err := o.identity.ResolveUserID(ctx, req.Token)
	if err != nil {
		return false, newError(CodeUnauthorized, "invalid_credential", err)
	}

	conversation, err := o.store.GetConversation(ctx, &store.FindConversation{
		UID:       &req.ConversationUID,
		CreatorID: &userID,
	})
	if err != nil {
		return false, newError(CodePersistenceFailure, "conversation_lookup", err)
	}
	if conversation == nil {
		return false, newError(CodeConversationNotFound, "unknown_conversation", nil)
	}

	// QuotaChecking.
	hasPaidSubscription, err := o.entitlements.HasPaidSubscription(ctx, req.Token)
	if err != nil {
		return false, newError(CodeEntitlementUnavailable, "entitlement_lookup", err)
	}
	allowed, err := o.quota.Allow(ctx, userID, hasPaidSubscription)
	if err != nil {
		return false, newError(CodePersistenceFailure, "quota_count", err)
	}
	if !allowed {
		return false, newError(CodeQuotaExceeded, "monthly_limit_reached", nil)
	}

	// PersistingPlaceholders: human message first, then its empty assistant
	// pair. No transaction spans the two inserts.
	human, err := o.store.CreateMessage(ctx, &store.CreateMessage{
		ConversationID: conversation.ID,
		CreatorID:      userID,
		Kind:           store.KindHuman,
		Content:        req.Message,
	})
	if err != nil {
		return false, newError(CodePersistenceFailure, "persist_human_message", err)
	}
	assistant, err := o.store.CreateMessage(ctx, &store.CreateMessage{
		ConversationID: conversation.ID,
		CreatorID:      userID,
		Kind:           store.KindAssistant,
		Content:        "",
	})
	if err != nil {
		slog.Error("assistant placeholder insert failed, human message left unpaired",
			"turn", turnID, "conversation", conversation.UID, "humanMessage", human.ID, "err", err)
		return false, newError(CodePersistenceFailure, "persist_assistant_placeholder", err)
	}

	// BuildingHistory. The human message's id is the exclusive bound, so the
	// turn's own pair never appears in its own context.
	history, err := o.history.Build(ctx, conversation.ID, userID, human.ID)
	if err != nil {
		return false, newError(CodePersistenceFailure, "build_history", err)
	}

	// Streaming: relay each fragment immediately, accumulate the sanitized
	// text for finalization.
	var accumulated strings.Builder
	relayed := false
	callerGone := false
	streamErr := o.backend.StreamChat(ctx, o.persona, history, req.Message, func(ctx context.Context, chunk string) error {
		if err := sink.Fragment(ctx, chunk); err != nil {
			callerGone = true
			return err
		}
		relayed = true
		accumulated.WriteString(collapseCodeFences(chunk))
		return nil
	})

	switch {
	case callerGone:
		slog.Info("caller disconnected mid-stream", "turn", turnID, "conversation", conversation.UID)
	case streamErr != nil && !relayed:
		// Nothing reached the caller yet; finalize the empty placeholder and
		// report the failure.
		o.finalize(ctx, turnID, conversation.UID, assistant.ID, accumulated.String())
		return false, newError(CodeBackendFailure, "generation_failed", streamErr)
	case streamErr != nil:
		slog.Error("generation backend failed after partial output",
			"turn", turnID, "conversation", conversation.UID, "partialLen", accumulated.Len(), "err", streamErr)
	}

	// Finalizing: the placeholder's single permitted mutation.
	o.finalize(ctx, turnID, conversation.UID, assistant.ID, accumulated.String())
	return streamErr == nil && !callerGone, nil
}

// finalize writes the accumulated reply into the assistant placeholder. It
// runs on a context detached from the caller so a disconnect still gets a
// bounded attempt; a failure is a durability warning, never retried.
func (o *Orchestrator) finalize(ctx context.Context, turnID, conversationUID string, assistantID int32, content string) {
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.finalizeTimeout)
	defer cancel()
	if err := o.store.UpdateMessageContent(fctx, assistantID, content); err != nil {
		slog.Error("durability warning: streamed reply was not persisted",
			"turn", turnID, "conversation", conversationUID, "assistantMessage", assistantID,
			"code", CodeFinalizationFailure, "err", err)
	}
}

// collapseCodeFences strips backend formatting markers from text bound for
// storage. Relayed fragments stay untouched.
func collapseCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```markdown", "\n")
	return strings.ReplaceAll(text, "```", "\n")
}
