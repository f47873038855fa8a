// Package trading glues the eligibility gate, the transaction builders, and
// the order book together: a user intent comes in, the ledger decides, a
// display-ready book comes back out.
package trading

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hliosone/Permix/internal/audit"
	"github.com/hliosone/Permix/internal/eligibility"
	"github.com/hliosone/Permix/internal/ledger"
	"github.com/hliosone/Permix/internal/orderbook"
	"github.com/hliosone/Permix/internal/trading/metrics"
	"github.com/hliosone/Permix/internal/txbuilder"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
	"github.com/hliosone/Permix/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// LedgerGateway is the port to the ledger node used by the trading service.
type LedgerGateway interface {
	Submit(ctx context.Context, payload any) (ledger.SubmitResult, error)
	AccountCredentials(ctx context.Context, account string) ([]eligibility.Credential, error)
	DomainPolicy(ctx context.Context, owner, domainID string) (eligibility.Policy, error)
	BookOffers(ctx context.Context, takerGets, takerPays txbuilder.CurrencyRef) ([]orderbook.RawOffer, error)
}

// evidenceTimeout bounds the parallel ledger lookups feeding the gate.
const evidenceTimeout = 10 * time.Second

// DomainRef locates a permissioned domain: the ledger indexes domain
// objects by their owning account.
type DomainRef struct {
	Owner string `json:"owner"`
	ID    string `json:"id"`
}

// PlaceOrderRequest is the high-level order intent.
type PlaceOrderRequest struct {
	Account   string                `json:"account"`
	Domain    *DomainRef            `json:"domain,omitempty"`
	Side      txbuilder.Side        `json:"side"`
	Pair      txbuilder.TradingPair `json:"pair"`
	Quantity  float64               `json:"quantity"`
	UnitPrice float64               `json:"unit_price"`
}

// PlaceOrderResult reports the ledger's answer.
type PlaceOrderResult struct {
	TxHash     string `json:"tx_hash"`
	ResultCode string `json:"result_code"`
}

// Service coordinates order placement, cancellation, and book reads.
type Service struct {
	ledger  LedgerGateway
	cache   *orderbook.Cache
	audit   *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(gateway LedgerGateway, cache *orderbook.Cache, publisher *audit.Publisher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		ledger:  gateway,
		cache:   cache,
		audit:   publisher,
		logger:  logger,
		metrics: m,
	}
}

// PlaceOrder gates the intent on domain eligibility, builds a fresh payload,
// and submits it. The payload is built immediately before submission and
// never reused: resubmitting a stale payload may replay with a different
// sequence.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (PlaceOrderResult, error) {
	domainID := ""
	if req.Domain != nil {
		domainID = req.Domain.ID
		if err := s.gate(ctx, req.Account, *req.Domain); err != nil {
			return PlaceOrderResult{}, err
		}
	}

	payload, err := txbuilder.PlaceOrder(req.Account, domainID, req.Side, req.Pair, req.Quantity, req.UnitPrice)
	if err != nil {
		s.countRejected("validation")
		return PlaceOrderResult{}, err
	}

	res, err := s.ledger.Submit(ctx, payload)
	s.emit(ctx, audit.Event{
		Category: audit.CategoryTrading,
		Actor:    req.Account,
		Action:   "order.place",
		Decision: res.ResultCode,
		TxHash:   res.TxHash,
	})
	out := PlaceOrderResult{TxHash: res.TxHash, ResultCode: res.ResultCode}
	if err != nil {
		s.countRejected("ledger")
		return out, err
	}

	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
	}
	return out, nil
}

// gate runs the eligibility check for a domain-scoped order, gathering the
// held credentials and the domain policy in parallel with shared
// cancellation.
func (s *Service) gate(ctx context.Context, account string, domain DomainRef) error {
	ctx, cancel := context.WithTimeout(ctx, evidenceTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	var held []eligibility.Credential
	var policy eligibility.Policy

	g.Go(func() error {
		start := time.Now()
		creds, err := s.ledger.AccountCredentials(gctx, account)
		s.metrics.ObserveEvidenceLatency("credentials", time.Since(start))
		if err != nil {
			return err
		}
		held = creds
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		p, err := s.ledger.DomainPolicy(gctx, domain.Owner, domain.ID)
		s.metrics.ObserveEvidenceLatency("domain", time.Since(start))
		if err != nil {
			return err
		}
		policy = p
		return nil
	})

	if err := g.Wait(); err != nil {
		s.countRejected("evidence")
		return err
	}

	if !eligibility.IsEligible(held, policy, requestcontext.Now(ctx)) {
		s.countRejected("eligibility")
		s.emit(ctx, audit.Event{
			Category: audit.CategoryTrading,
			Actor:    account,
			Action:   "order.gate",
			Decision: "rejected",
			Reason:   "no accepted credential matches the domain policy",
		})
		return dErrors.New(dErrors.CodeNotEligible, "the account holds no accepted credential matching the domain policy")
	}
	return nil
}

// CancelOrder withdraws an order by sequence.
func (s *Service) CancelOrder(ctx context.Context, account string, sequence uint32) (PlaceOrderResult, error) {
	payload, err := txbuilder.CancelOrder(account, sequence)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	res, err := s.ledger.Submit(ctx, payload)
	s.emit(ctx, audit.Event{
		Category: audit.CategoryTrading,
		Actor:    account,
		Action:   "order.cancel",
		Decision: res.ResultCode,
		TxHash:   res.TxHash,
	})
	out := PlaceOrderResult{TxHash: res.TxHash, ResultCode: res.ResultCode}
	if err != nil {
		return out, err
	}

	if s.metrics != nil {
		s.metrics.OrdersCancelled.Inc()
	}
	return out, nil
}

// OrderBook returns the classified book for a pair, served from the
// snapshot cache when fresh enough.
func (s *Service) OrderBook(ctx context.Context, pair txbuilder.TradingPair) (orderbook.Book, error) {
	if book, ok := s.cache.Get(ctx, pair); ok {
		if s.metrics != nil {
			s.metrics.BookCacheHits.Inc()
		}
		return book, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	var selling, buying []orderbook.RawOffer

	g.Go(func() error {
		offers, err := s.ledger.BookOffers(gctx, pair.Quote, pair.Base)
		if err != nil {
			return err
		}
		selling = offers
		return nil
	})
	g.Go(func() error {
		offers, err := s.ledger.BookOffers(gctx, pair.Base, pair.Quote)
		if err != nil {
			return err
		}
		buying = offers
		return nil
	})
	if err := g.Wait(); err != nil {
		return orderbook.Book{}, err
	}

	book := orderbook.Classify(append(selling, buying...), pair, s.logger)
	if s.metrics != nil && book.Skipped > 0 {
		s.metrics.OffersSkipped.Add(float64(book.Skipped))
	}

	if err := s.cache.Put(ctx, pair, book); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "book cache write failed", "error", err)
	}
	return book, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit != nil {
		s.audit.Emit(ctx, event)
	}
}

func (s *Service) countRejected(cause string) {
	if s.metrics != nil {
		s.metrics.OrdersRejected.WithLabelValues(cause).Inc()
	}
}
