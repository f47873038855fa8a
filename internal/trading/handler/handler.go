package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hliosone/Permix/internal/orderbook"
	"github.com/hliosone/Permix/internal/trading"
	"github.com/hliosone/Permix/internal/txbuilder"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
	"github.com/hliosone/Permix/pkg/httputil"
	"github.com/hliosone/Permix/pkg/requestcontext"
)

// Service defines the interface for trading operations.
type Service interface {
	PlaceOrder(ctx context.Context, req trading.PlaceOrderRequest) (trading.PlaceOrderResult, error)
	CancelOrder(ctx context.Context, account string, sequence uint32) (trading.PlaceOrderResult, error)
	OrderBook(ctx context.Context, pair txbuilder.TradingPair) (orderbook.Book, error)
}

// Handler wires trading endpoints to the trading service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a trading handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts trading endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.HandlePlaceOrder)
	r.Post("/orders/cancel", h.HandleCancelOrder)
	r.Post("/book", h.HandleOrderBook)
}

// HandlePlaceOrder handles POST /orders requests.
func (h *Handler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[trading.PlaceOrderRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.PlaceOrder(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "order placement failed",
			"request_id", requestID,
			"account", req.Account,
			"side", req.Side,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "order placed",
		"request_id", requestID,
		"account", req.Account,
		"side", req.Side,
		"tx_hash", result.TxHash,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// CancelOrderRequest identifies the offer to withdraw.
type CancelOrderRequest struct {
	Account  string `json:"account"`
	Sequence uint32 `json:"sequence"`
}

// HandleCancelOrder handles POST /orders/cancel requests.
func (h *Handler) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[CancelOrderRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.Account == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "account is required"))
		return
	}

	result, err := h.service.CancelOrder(ctx, req.Account, req.Sequence)
	if err != nil {
		h.logger.ErrorContext(ctx, "order cancellation failed",
			"request_id", requestID,
			"account", req.Account,
			"sequence", req.Sequence,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "order cancelled",
		"request_id", requestID,
		"account", req.Account,
		"sequence", req.Sequence,
		"tx_hash", result.TxHash,
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// OrderBookRequest names the pair to reconstruct.
type OrderBookRequest struct {
	Pair txbuilder.TradingPair `json:"pair"`
}

// HandleOrderBook handles POST /book requests. The pair rides in the body
// because currency references carry an optional issuer, which does not
// flatten into a path segment cleanly.
func (h *Handler) HandleOrderBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[OrderBookRequest](w, r, h.logger)
	if !ok {
		return
	}

	book, err := h.service.OrderBook(ctx, req.Pair)
	if err != nil {
		h.logger.ErrorContext(ctx, "order book reconstruction failed",
			"request_id", requestID,
			"base", req.Pair.Base.Code,
			"quote", req.Pair.Quote.Code,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "order book served",
		"request_id", requestID,
		"base", req.Pair.Base.Code,
		"quote", req.Pair.Quote.Code,
		"asks", len(book.Asks),
		"bids", len(book.Bids),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, book)
}
