package models

import "fmt"

// PointDirection distinguishes debits from compensating credits
type PointDirection string

const (
	PointDebit  PointDirection = "debit"
	PointCredit PointDirection = "credit"
)

// PointTransaction describes one request issued against the external point
// service. The ledger itself is owned by that service; this record only
// tracks what the saga asked for.
type PointTransaction struct {
	RequesterID string         `json:"requester_id"`
	Amount      int            `json:"amount"`
	Direction   PointDirection `json:"direction"`
}

// String renders the transaction for the saga transition log
func (t PointTransaction) String() string {
	return fmt.Sprintf("%s %d points [%s]", t.Direction, t.Amount, t.RequesterID)
}
