package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"

	"song-order-service/internal/catalog"
	"song-order-service/internal/orders"
	"song-order-service/pkg/ctxmanage"
	"song-order-service/pkg/logkey"
)

type CheckoutRequest struct {
	Plan           string          `json:"plan"`
	SongData       orders.SongData `json:"songData"`
	Email          string          `json:"email" binding:"required,email"`
	Language       string          `json:"language"`
	UrgentDelivery bool            `json:"urgentDelivery"`
	VideoOption    bool            `json:"videoOption"`
}

// CreateCheckoutSession computes the itemized charge list for the requested
// plan and add-ons, attaches the song brief as session metadata, and returns
// the hosted checkout redirect URL.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid checkout request",
			slog.String(logkey.TraceID, traceId), slog.String(logkey.ErrorKey, err.Error()))
		respondValidationError(c, err.Error())
		return
	}

	// Unknown plan ids coerce to the standard tier rather than failing.
	product := catalog.Lookup(req.Plan)
	lines := catalog.ChargeLines(product, req.UrgentDelivery, req.VideoOption, h.taxed)

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(line.Name),
		}
		if line.Description != "" {
			productData.Description = stripe.String(line.Description)
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(catalog.Currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(line.Amount),
			},
			Quantity: stripe.Int64(1),
		})
	}

	locale := orders.NormalizeLocale(req.Language)
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(h.frontendURL + "/success.html?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(h.frontendURL + "/#pricing"),
		CustomerEmail:      stripe.String(req.Email),
		Locale:             stripe.String(locale),
		Metadata:           orders.Metadata(product.ID, req.SongData, locale, req.UrgentDelivery, req.VideoOption),
	}

	sess, err := h.stripe.CreateCheckoutSession(params)
	if err != nil {
		slog.Error("error creating checkout session",
			slog.String(logkey.TraceID, traceId),
			slog.String(logkey.Plan, product.ID),
			slog.String(logkey.ErrorKey, err.Error()))
		respondUpstreamError(c, err.Error())
		return
	}

	slog.Info("checkout session created",
		slog.String(logkey.TraceID, traceId),
		slog.String(logkey.SessionID, sess.ID),
		slog.String(logkey.Plan, product.ID))
	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}
