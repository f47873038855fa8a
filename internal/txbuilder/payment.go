package txbuilder

import dErrors "github.com/hliosone/Permix/pkg/domainerrors"

// Payment moves an issued token from one account to another. Issuance and
// transfer are the same transaction shape: a payment from the issuer mints,
// any other payment moves existing balances.
type Payment struct {
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	Destination     string `json:"Destination"`
	Amount          Amount `json:"Amount"`
}

// IssueOrTransferToken builds a token Payment.
func IssueOrTransferToken(from, destination, currencyCode, amount string) (*Payment, error) {
	if err := requireAccount("from", from); err != nil {
		return nil, err
	}
	if err := requireAccount("destination", destination); err != nil {
		return nil, err
	}
	if from == destination {
		return nil, dErrors.New(dErrors.CodeValidation, "source and destination must differ")
	}
	if err := requirePositiveDecimal("amount", amount); err != nil {
		return nil, err
	}
	amt, err := TokenAmount(currencyCode, from, amount)
	if err != nil {
		return nil, err
	}
	return &Payment{
		TransactionType: "Payment",
		Account:         from,
		Destination:     destination,
		Amount:          amt,
	}, nil
}
