// Package orderbook reconstructs a two-sided order book from raw ledger
// offer records. Classification is a stateless pure function over a
// snapshot: repeated invocations share nothing, so concurrent calls against
// a live feed are safe.
package orderbook

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/hliosone/Permix/internal/currency"
	"github.com/hliosone/Permix/internal/txbuilder"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// RawOffer is one ledger offer record as returned by the gateway.
type RawOffer struct {
	Account   string           `json:"account"`
	TakerGets txbuilder.Amount `json:"taker_gets"`
	TakerPays txbuilder.Amount `json:"taker_pays"`
	Sequence  uint32           `json:"sequence"`
	DomainID  string           `json:"domain_id,omitempty"`
}

// PricedOrder is one classified book level, ready for display.
type PricedOrder struct {
	Account  string  `json:"account"`
	Price    float64 `json:"price"`
	Amount   float64 `json:"amount"`
	Sequence uint32  `json:"sequence"`
	DomainID string  `json:"domain_id,omitempty"`
}

// Book is the classified two-sided order book for a trading pair.
type Book struct {
	Bids []PricedOrder `json:"bids"`
	Asks []PricedOrder `json:"asks"`

	// Skipped counts offers dropped as malformed (zero quantities).
	Skipped int `json:"skipped,omitempty"`
}

// Classify splits raw offers into bids and asks for the pair.
//
// An offer giving quote and asking base sells the base asset: an ask with
// price = gets/pays and amount = pays. An offer giving base and asking quote
// is a bid with price = pays/gets and amount = gets. Offers matching neither
// orientation belong to another pair and are discarded silently. Degenerate
// offers with a zero quantity are skipped and counted, never propagated as
// Inf/NaN.
//
// Asks sort ascending by price, bids descending, stable so insertion order
// breaks ties deterministically.
func Classify(rawOffers []RawOffer, pair txbuilder.TradingPair, logger *slog.Logger) Book {
	book := Book{Bids: []PricedOrder{}, Asks: []PricedOrder{}}

	for _, offer := range rawOffers {
		switch {
		case matches(offer.TakerGets, pair.Quote) && matches(offer.TakerPays, pair.Base):
			level, err := price(offer, offer.TakerGets, offer.TakerPays)
			if err != nil {
				book.Skipped++
				if logger != nil {
					logger.Warn("skipping malformed offer", "account", offer.Account, "sequence", offer.Sequence, "error", err)
				}
				continue
			}
			book.Asks = append(book.Asks, level)
		case matches(offer.TakerGets, pair.Base) && matches(offer.TakerPays, pair.Quote):
			level, err := price(offer, offer.TakerPays, offer.TakerGets)
			if err != nil {
				book.Skipped++
				if logger != nil {
					logger.Warn("skipping malformed offer", "account", offer.Account, "sequence", offer.Sequence, "error", err)
				}
				continue
			}
			book.Bids = append(book.Bids, level)
		default:
			// Different pair, not an error.
		}
	}

	sort.SliceStable(book.Asks, func(i, j int) bool { return book.Asks[i].Price < book.Asks[j].Price })
	sort.SliceStable(book.Bids, func(i, j int) bool { return book.Bids[i].Price > book.Bids[j].Price })
	return book
}

// price derives a book level with price = numerator/denominator and
// amount = denominator's base-side quantity.
func price(offer RawOffer, numerator, denominator txbuilder.Amount) (PricedOrder, error) {
	num, err := value(numerator)
	if err != nil {
		return PricedOrder{}, err
	}
	den, err := value(denominator)
	if err != nil {
		return PricedOrder{}, err
	}
	if den == 0 || num == 0 {
		return PricedOrder{}, dErrors.New(dErrors.CodeMalformedOffer, "offer has a zero quantity")
	}
	return PricedOrder{
		Account:  offer.Account,
		Price:    num / den,
		Amount:   den,
		Sequence: offer.Sequence,
		DomainID: offer.DomainID,
	}, nil
}

// value extracts the numeric quantity from either amount form: a bare
// scalar already is the value, a structured amount carries it in its value
// field. The duality mirrors the builders' wire encoding.
func value(a txbuilder.Amount) (float64, error) {
	v, err := strconv.ParseFloat(a.Value, 64)
	if err != nil {
		return 0, dErrors.Wrap(dErrors.CodeMalformedOffer, "offer amount is not numeric", err)
	}
	return v, nil
}

func matches(a txbuilder.Amount, ref txbuilder.CurrencyRef) bool {
	if ref.IsNative() {
		return a.IsNative()
	}
	return a.Issuer == ref.Issuer && currency.Equal(a.Currency, ref.Code)
}
