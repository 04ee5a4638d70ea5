package ledger

// Journal collects compensation steps while a multi-step operation runs.
// If the operation fails partway, Rollback undoes everything applied so far
// in reverse order, restoring the ledger to its pre-call state.
//
// Compensations must not fail. Reservation releases already have that
// property (best-effort unreserve); reverse transfers cannot fail because
// the forward transfer just credited the amount being moved back.
type Journal struct {
	undo []func()
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Record registers the compensation for a mutation that just succeeded.
func (j *Journal) Record(compensate func()) {
	j.undo = append(j.undo, compensate)
}

// Rollback runs all recorded compensations in reverse order and clears the
// journal. Safe to call on an empty journal.
func (j *Journal) Rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// Commit discards the recorded compensations, making the mutations final.
func (j *Journal) Commit() {
	j.undo = nil
}
