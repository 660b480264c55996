// Package bookingform is the client side of the test drive booking form. It
// holds the field values and the submit state machine and posts the booking
// to the dispatch service.
//
// A Form moves Idle -> Sending -> Succeeded | Failed. Only one submit can be
// in flight per Form; the submit control is disabled exactly while Sending.
package bookingform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"showroom_backend/internal/booking/transport"
	"showroom_backend/platform/validator"
)

// Phase is the submit state of a Form.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSending   Phase = "sending"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// Field names accepted by Set. They match the JSON names on the wire.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldModel     = "model"
	FieldMessage   = "message"
)

const failureMessage = "Sorry, something went wrong. Please try again later."

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous submit is still sending.
	ErrSubmitInFlight = errors.New("submit already in progress")
	// ErrUnknownField is returned by Set for a name that is not a form field.
	ErrUnknownField = errors.New("unknown form field")
	// ErrSubmitFailed is returned when the service did not confirm the booking.
	ErrSubmitFailed = errors.New("test drive request failed")
)

// ValidationError lists the required fields that are missing or malformed.
// A submit that fails validation sends nothing and leaves the phase unchanged.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// Snapshot is a consistent copy of the form state.
type Snapshot struct {
	Fields         transport.BookingRequest
	Phase          Phase
	Status         string
	SubmitDisabled bool
}

// Form is safe for concurrent use.
type Form struct {
	mu        sync.Mutex
	fields    transport.BookingRequest
	phase     Phase
	status    string
	submitter Submitter
	val       *validator.Validator
	observers []func(Snapshot)
}

// New creates an empty form with the default model preselected.
func New(submitter Submitter) *Form {
	return &Form{
		fields:    defaultFields(),
		phase:     PhaseIdle,
		submitter: submitter,
		val:       validator.New(),
	}
}

func defaultFields() transport.BookingRequest {
	return transport.BookingRequest{Model: transport.DefaultModel()}
}

// SuccessMessage is the status shown after a confirmed booking.
func SuccessMessage(firstName string) string {
	return fmt.Sprintf("Thank you, %s! Your test drive request has been sent. We'll be in touch shortly.", firstName)
}

// OnChange registers fn to receive a snapshot after every state change.
// Observers run synchronously, outside the form's lock, in registration order.
func (f *Form) OnChange(fn func(Snapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, fn)
}

// Set updates one field by its JSON name.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	switch field {
	case FieldFirstName:
		f.fields.FirstName = value
	case FieldLastName:
		f.fields.LastName = value
	case FieldEmail:
		f.fields.Email = value
	case FieldPhone:
		f.fields.Phone = value
	case FieldModel:
		f.fields.Model = value
	case FieldMessage:
		f.fields.Message = value
	default:
		f.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snap)
	return nil
}

// Snapshot returns the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// SubmitDisabled reports whether a submit is in flight.
func (f *Form) SubmitDisabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase == PhaseSending
}

// Submit validates the fields and posts them once. On a confirmed booking the
// fields are reset; on any failure they are kept so the user can retry.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.phase == PhaseSending {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	req := f.fields
	if err := f.val.Struct(req); err != nil {
		f.mu.Unlock()
		if fields := validator.InvalidFields(err); len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}
		return err
	}
	f.phase = PhaseSending
	f.status = ""
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)

	result, err := f.submitter.Submit(ctx, req)

	f.mu.Lock()
	if err == nil && result.Success {
		f.phase = PhaseSucceeded
		f.status = SuccessMessage(req.FirstName)
		f.fields = defaultFields()
	} else {
		f.phase = PhaseFailed
		f.status = failureMessage
	}
	snap = f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)

	switch {
	case err != nil:
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	case !result.Success:
		return fmt.Errorf("%w: %s", ErrSubmitFailed, result.Error)
	}
	return nil
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		Fields:         f.fields,
		Phase:          f.phase,
		Status:         f.status,
		SubmitDisabled: f.phase == PhaseSending,
	}
}

func (f *Form) notify(snap Snapshot) {
	f.mu.Lock()
	observers := append(([]func(Snapshot))(nil), f.observers...)
	f.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}
