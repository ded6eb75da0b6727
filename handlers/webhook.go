package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"song-order-service/pkg/ctxmanage"
	"song-order-service/pkg/logkey"
)

// Webhook handles signed Stripe events. Completed checkout sessions are routed
// to the same finalizer as the polling path, so whichever path observes the
// payment first owns the notification.
func (h *Handler) Webhook(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	const MaxBodyBytes = int64(65536)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.Error("failed to read webhook payload",
			slog.String(logkey.TraceID, traceId), slog.String(logkey.ErrorKey, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable payload", "code": codeValidation})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		slog.Error("webhook signature verification failed",
			slog.String(logkey.TraceID, traceId), slog.String(logkey.ErrorKey, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid signature", "code": codeValidation})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			slog.Error("failed to parse checkout session from event",
				slog.String(logkey.TraceID, traceId), slog.String(logkey.ErrorKey, err.Error()))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": codeValidation})
			return
		}
		slog.Info("checkout session completed",
			slog.String(logkey.TraceID, traceId), slog.String(logkey.SessionID, sess.ID))
		if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			h.finalizer.FinalizePaid(c.Request.Context(), &sess)
		}
	default:
		slog.Info("unhandled event type",
			slog.String(logkey.TraceID, traceId), slog.String("event_type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
