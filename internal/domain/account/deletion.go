package account

import "github.com/BruksfildServices01/coach-calendar/internal/httperr"

// ===============================
// Deletion State
// ===============================

type State string

const (
	StateIdle           State = "idle"
	StateConfirmPending State = "confirmPending"
	StateDeleting       State = "deleting"
	StateReauthRequired State = "reauthRequired"
	StateDone           State = "done"
)

// ConfirmWord must be typed to confirm the deletion.
const ConfirmWord = "DELETE"

var (
	ErrConfirmationRequired = httperr.ErrBusiness("confirmation_required")
	ErrInvalidState         = httperr.ErrBusiness("invalid_state")
)

// Deletion tracks one account deletion attempt:
// idle -> confirmPending -> deleting -> done, with
// deleting -> reauthRequired -> deleting when the session is stale.
type Deletion struct {
	state State
}

func NewDeletion() *Deletion {
	return &Deletion{state: StateIdle}
}

func (d *Deletion) State() State {
	return d.state
}

func (d *Deletion) Confirm(typed string) error {
	if d.state != StateIdle {
		return ErrInvalidState
	}
	if typed != ConfirmWord {
		return ErrConfirmationRequired
	}
	d.state = StateConfirmPending
	return nil
}

func (d *Deletion) Begin() error {
	if d.state != StateConfirmPending {
		return ErrInvalidState
	}
	d.state = StateDeleting
	return nil
}

func (d *Deletion) RequireReauth() error {
	if d.state != StateDeleting {
		return ErrInvalidState
	}
	d.state = StateReauthRequired
	return nil
}

func (d *Deletion) Reauthenticated() error {
	if d.state != StateReauthRequired {
		return ErrInvalidState
	}
	d.state = StateDeleting
	return nil
}

func (d *Deletion) Finish() error {
	if d.state != StateDeleting {
		return ErrInvalidState
	}
	d.state = StateDone
	return nil
}
