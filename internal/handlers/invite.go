package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"trenddrop/internal/db"
	"trenddrop/internal/models"
	"trenddrop/internal/validation"
)

// InviteTTL is how long a community invite link stays valid.
const InviteTTL = 7 * 24 * time.Hour

// SubscriberStore reads and claims subscriber rows.
type SubscriberStore interface {
	FindSubscriber(ctx context.Context, email, purchaseID string) (*models.Subscriber, error)
	MarkSubscriberClaimed(ctx context.Context, id uuid.UUID) error
}

// InviteLinkCreator mints Telegram chat invite links.
type InviteLinkCreator interface {
	CreateChatInviteLink(ctx context.Context, chatID string, memberLimit int, expire time.Time) (string, error)
}

// InviteHandler serves /create-telegram-invite.
type InviteHandler struct {
	store   SubscriberStore
	invites InviteLinkCreator
	chatID  string
	now     func() time.Time
}

// NewInviteHandler creates a new invite handler. invites may be nil when no
// bot is configured.
func NewInviteHandler(store SubscriberStore, invites InviteLinkCreator, chatID string) *InviteHandler {
	return &InviteHandler{store: store, invites: invites, chatID: chatID, now: time.Now}
}

type inviteRequest struct {
	Email      string `json:"email"`
	PurchaseID string `json:"purchase_id"`
}

func inviteError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// Create claims a paid subscriber and returns a single-use invite link.
// Each subscriber can claim once.
func (h *InviteHandler) Create(c fiber.Ctx) error {
	var req inviteRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return inviteError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := validation.NormalizeEmail(req.Email)
	if email == "" {
		return inviteError(c, fiber.StatusBadRequest, "email required")
	}
	purchaseID := strings.TrimSpace(req.PurchaseID)

	sub, err := h.store.FindSubscriber(c.Context(), email, purchaseID)
	if err != nil {
		if errors.Is(err, db.ErrSubscriberNotFound) {
			return inviteError(c, fiber.StatusNotFound, "no account found")
		}
		slog.Error("subscriber lookup failed", "error", err)
		return inviteError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !sub.IsPaid() {
		return inviteError(c, fiber.StatusForbidden, sub.Status)
	}
	if sub.IsClaimed() {
		return inviteError(c, fiber.StatusConflict, "already claimed")
	}

	if h.invites == nil || h.chatID == "" {
		return inviteError(c, fiber.StatusInternalServerError, "telegram not configured")
	}

	link, err := h.invites.CreateChatInviteLink(c.Context(), h.chatID, 1, h.now().Add(InviteTTL))
	if err != nil {
		slog.Error("invite link creation failed", "subscriber", sub.ID, "error", err)
		return inviteError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := h.store.MarkSubscriberClaimed(c.Context(), sub.ID); err != nil {
		if errors.Is(err, db.ErrAlreadyClaimed) {
			return inviteError(c, fiber.StatusConflict, "already claimed")
		}
		slog.Error("failed to mark subscriber claimed", "subscriber", sub.ID, "error", err)
		return inviteError(c, fiber.StatusInternalServerError, err.Error())
	}

	slog.Info("community invite issued", "subscriber", sub.ID)
	return c.JSON(fiber.Map{"invite_link": link})
}
