package notifications

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Notifier is the use case behind the HTTP handler.
type Notifier interface {
	Notify(ctx context.Context, orderID, statusName string) (Delivery, error)
	History(ctx context.Context, orderID string) ([]Delivery, error)
}

// NotifyRequest is the body of POST /notify.
type NotifyRequest struct {
	OrderID    string `json:"orderId" binding:"required"`
	StatusName string `json:"statusName" binding:"required"`
}

// Handler serves the notification endpoints.
type Handler struct {
	notifier Notifier
	logger   *slog.Logger
}

func NewHandler(notifier Notifier, logger *slog.Logger) *Handler {
	return &Handler{notifier: notifier, logger: logger.With("component", "notification_handler")}
}

// NewRouter mounts the handler on a gin engine:
//
//	GET  /health
//	POST /notify
//	GET  /notifications/:orderId
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Healthy"})
	})
	r.POST("/notify", h.Notify)
	r.GET("/notifications/:orderId", h.History)

	return r
}

// Notify handles POST /notify.
func (h *Handler) Notify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId and statusName are required"})
		return
	}
	if _, err := uuid.Parse(req.OrderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId must be a UUID"})
		return
	}

	if strings.ContainsFunc(req.StatusName, unicode.IsControl) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "statusName must not contain control characters"})
		return
	}

	d, err := h.notifier.Notify(c.Request.Context(), req.OrderID, req.StatusName)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Notification sent to " + d.Recipient})
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.ErrorContext(c.Request.Context(), "notification failed", "order", req.OrderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send notification",
			"details": err.Error(),
		})
	}
}

// History handles GET /notifications/:orderId.
func (h *Handler) History(c *gin.Context) {
	orderID := c.Param("orderId")
	if _, err := uuid.Parse(orderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId must be a UUID"})
		return
	}

	deliveries, err := h.notifier.History(c.Request.Context(), orderID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "history lookup failed", "order", orderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read notifications", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, deliveries)
}
