package distribution

import "fmt"

type Phase int

const (
	Idle Phase = iota
	Pending
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Status is the state of the batch distribution. The transition methods are
// pure: they return the next Status and whether the transition is allowed,
// and leave the receiver untouched.
type Status struct {
	Phase Phase
	// Message is the failure reason when Phase is Failed.
	Message string
	BatchID string
	// TxHash is set by services that report one on success.
	TxHash string
}

// Terminal reports whether the batch has finished.
func (s Status) Terminal() bool {
	return s.Phase == Succeeded || s.Phase == Failed
}

func (s Status) String() string {
	switch s.Phase {
	case Failed:
		return fmt.Sprintf("failed: %s", s.Message)
	case Succeeded:
		if s.TxHash != "" {
			return fmt.Sprintf("succeeded: %s", s.TxHash)
		}
	}
	return s.Phase.String()
}

// Begin moves Idle to Pending.
func (s Status) Begin(batchID string) (Status, bool) {
	if s.Phase != Idle {
		return s, false
	}
	return Status{Phase: Pending, BatchID: batchID}, true
}

// Succeed moves Pending to Succeeded.
func (s Status) Succeed(txHash string) (Status, bool) {
	if s.Phase != Pending {
		return s, false
	}
	return Status{Phase: Succeeded, BatchID: s.BatchID, TxHash: txHash}, true
}

// Fail moves Pending to Failed with message as the reason.
func (s Status) Fail(message string) (Status, bool) {
	if s.Phase != Pending {
		return s, false
	}
	return Status{Phase: Failed, BatchID: s.BatchID, Message: message}, true
}

// Reset moves a finished batch back to Idle so a new one can start. A
// pending batch can't be reset.
func (s Status) Reset() (Status, bool) {
	switch s.Phase {
	case Succeeded, Failed:
		return Status{Phase: Idle}, true
	case Idle:
		return s, true
	default:
		return s, false
	}
}
