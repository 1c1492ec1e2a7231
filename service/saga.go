package service

import (
	"log"

	"github.com/google/uuid"
)

// SagaState names one state of the generation saga. Terminal failure states
// are distinct so logs can separate an insufficient balance from a ledger
// left out of balance.
type SagaState string

const (
	SagaInit           SagaState = "init"
	SagaPointsDebited  SagaState = "points_debited"
	SagaDraftGenerated SagaState = "draft_generated"
	SagaPersisted      SagaState = "persisted"

	SagaValidationFailed SagaState = "validation_failed"
	SagaDebitFailed      SagaState = "debit_failed"
	SagaCategoryNotFound SagaState = "category_not_found"
	SagaGenerationFailed SagaState = "generation_failed"
	SagaRefunded         SagaState = "persist_failed_refunded"
	SagaRefundFailed     SagaState = "persist_failed_refund_failed"
)

// saga tracks one generation run through its state machine. Transitions are
// logged with the saga id so a crash mid-saga leaves a reconstructable
// trail; there is no persisted transition record.
type saga struct {
	id          uuid.UUID
	requesterID string
	state       SagaState
}

func newSaga(requesterID string) *saga {
	return &saga{
		id:          uuid.New(),
		requesterID: requesterID,
		state:       SagaInit,
	}
}

// transition moves the saga to the next state and logs it
func (s *saga) transition(to SagaState, detail string) {
	log.Printf("saga %s [%s]: %s -> %s %s", s.id, s.requesterID, s.state, to, detail)
	s.state = to
}

// fail moves the saga to a terminal failure state. The refund-failed state
// logs with a CRITICAL prefix: it means points were debited, the draft was
// lost, and the compensating credit also failed, so the ledger needs manual
// reconciliation.
func (s *saga) fail(to SagaState, cause error) {
	if to == SagaRefundFailed {
		log.Printf("CRITICAL: saga %s [%s]: %s -> %s: %v", s.id, s.requesterID, s.state, to, cause)
	} else {
		log.Printf("saga %s [%s]: %s -> %s: %v", s.id, s.requesterID, s.state, to, cause)
	}
	s.state = to
}
