package txbuilder

import (
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// Side is the order direction relative to the pair's base asset.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// OfferCreate places a standing order, optionally scoped to a permissioned
// domain.
type OfferCreate struct {
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	TakerGets       Amount `json:"TakerGets"`
	TakerPays       Amount `json:"TakerPays"`
	DomainID        string `json:"DomainID,omitempty"`
}

// OfferCancel withdraws a previously placed order by its sequence number.
type OfferCancel struct {
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	OfferSequence   uint32 `json:"OfferSequence"`
}

// PlaceOrder derives TakerGets/TakerPays from the order side. A buy offers
// quantity of base and asks quantity*unitPrice of quote; a sell swaps the
// two. Native legs stay bare scalars, token legs stay structured.
func PlaceOrder(account, domainID string, side Side, pair TradingPair, quantity, unitPrice float64) (*OfferCreate, error) {
	if err := requireAccount("account", account); err != nil {
		return nil, err
	}
	if side != Buy && side != Sell {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown order side %q", side)
	}
	if quantity <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "quantity must be positive")
	}
	if unitPrice <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "unit price must be positive")
	}

	baseAmount, err := amountFor(pair.Base, quantity)
	if err != nil {
		return nil, err
	}
	quoteAmount, err := amountFor(pair.Quote, quantity*unitPrice)
	if err != nil {
		return nil, err
	}

	tx := &OfferCreate{
		TransactionType: "OfferCreate",
		Account:         account,
		DomainID:        domainID,
	}
	switch side {
	case Buy:
		tx.TakerGets = baseAmount
		tx.TakerPays = quoteAmount
	case Sell:
		tx.TakerGets = quoteAmount
		tx.TakerPays = baseAmount
	}
	return tx, nil
}

// CancelOrder builds an OfferCancel.
func CancelOrder(account string, sequence uint32) (*OfferCancel, error) {
	if err := requireAccount("account", account); err != nil {
		return nil, err
	}
	if sequence == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "offer sequence must be positive")
	}
	return &OfferCancel{
		TransactionType: "OfferCancel",
		Account:         account,
		OfferSequence:   sequence,
	}, nil
}
