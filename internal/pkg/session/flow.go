package session

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a flow step is attempted out of
// order.
var ErrInvalidTransition = errors.New("invalid flow transition")

// SignupState tracks progress through the registration flow.
type SignupState string

const (
	SignupStart                SignupState = "start"
	SignupAwaitingVerification SignupState = "awaiting_verification"
	SignupActive               SignupState = "active"
)

// SignupFlow is the client-side registration state machine: register,
// then verify the emailed code. Resends are allowed while waiting.
type SignupFlow struct {
	state SignupState
	email string
}

// NewSignupFlow starts a fresh signup flow.
func NewSignupFlow() *SignupFlow {
	return &SignupFlow{state: SignupStart}
}

// State returns the current flow state.
func (f *SignupFlow) State() SignupState {
	return f.state
}

// Email returns the address the flow was started with.
func (f *SignupFlow) Email() string {
	return f.email
}

// Registered records a successful register call.
func (f *SignupFlow) Registered(email string) error {
	if f.state != SignupStart {
		return fmt.Errorf("%w: cannot register from %q", ErrInvalidTransition, f.state)
	}
	f.state = SignupAwaitingVerification
	f.email = email
	return nil
}

// CanResend reports whether a resend makes sense right now.
func (f *SignupFlow) CanResend() bool {
	return f.state == SignupAwaitingVerification
}

// Verified records a successful OTP verification.
func (f *SignupFlow) Verified() error {
	if f.state != SignupAwaitingVerification {
		return fmt.Errorf("%w: cannot verify from %q", ErrInvalidTransition, f.state)
	}
	f.state = SignupActive
	return nil
}

// ResetState tracks progress through the password reset flow.
type ResetState string

const (
	ResetStart               ResetState = "start"
	ResetAwaitingCode        ResetState = "awaiting_code"
	ResetAwaitingNewPassword ResetState = "awaiting_new_password"
	ResetDone                ResetState = "done"
)

// ResetFlow is the client-side password reset state machine: request a
// code, optionally peek-verify it, then submit the new password. The
// peek step may be skipped since the reset call verifies the code
// itself.
type ResetFlow struct {
	state ResetState
	email string
}

// NewResetFlow starts a fresh reset flow.
func NewResetFlow() *ResetFlow {
	return &ResetFlow{state: ResetStart}
}

// State returns the current flow state.
func (f *ResetFlow) State() ResetState {
	return f.state
}

// Email returns the address the flow was started with.
func (f *ResetFlow) Email() string {
	return f.email
}

// Requested records a successful reset request.
func (f *ResetFlow) Requested(email string) error {
	if f.state != ResetStart {
		return fmt.Errorf("%w: cannot request reset from %q", ErrInvalidTransition, f.state)
	}
	f.state = ResetAwaitingCode
	f.email = email
	return nil
}

// CanResend reports whether a resend makes sense right now.
func (f *ResetFlow) CanResend() bool {
	return f.state == ResetAwaitingCode || f.state == ResetAwaitingNewPassword
}

// CodeVerified records a successful non-consuming code check.
func (f *ResetFlow) CodeVerified() error {
	if f.state != ResetAwaitingCode {
		return fmt.Errorf("%w: cannot verify code from %q", ErrInvalidTransition, f.state)
	}
	f.state = ResetAwaitingNewPassword
	return nil
}

// Completed records a successful password reset. The peek step is
// optional, so completion is valid from either waiting state.
func (f *ResetFlow) Completed() error {
	if f.state != ResetAwaitingCode && f.state != ResetAwaitingNewPassword {
		return fmt.Errorf("%w: cannot complete reset from %q", ErrInvalidTransition, f.state)
	}
	f.state = ResetDone
	return nil
}
