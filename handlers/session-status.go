package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"

	"song-order-service/internal/orders"
	"song-order-service/pkg/ctxmanage"
	"song-order-service/pkg/logkey"
)

// SessionStatus reads the current payment status of a checkout session. The
// first (and, with the ledger enabled, only) observation of a paid session
// triggers order finalization.
func (h *Handler) SessionStatus(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	sessionID := c.Query("session_id")
	if sessionID == "" {
		respondValidationError(c, "session_id query parameter is required")
		return
	}

	sess, err := h.stripe.GetCheckoutSession(sessionID)
	if err != nil {
		slog.Error("error retrieving checkout session",
			slog.String(logkey.TraceID, traceId),
			slog.String(logkey.SessionID, sessionID),
			slog.String(logkey.ErrorKey, err.Error()))
		respondUpstreamError(c, err.Error())
		return
	}

	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid && sess.Metadata != nil {
		h.finalizer.FinalizePaid(c.Request.Context(), sess)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         sess.PaymentStatus,
		"customer_email": orders.CustomerEmail(sess),
		"metadata":       sess.Metadata,
	})
}
