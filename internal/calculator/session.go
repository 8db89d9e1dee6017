package calculator

import (
	"context"
	"sync"

	"dentalsite/internal/forms"
)

type SubmissionStatus string

const (
	SubmissionIdle      SubmissionStatus = "idle"
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Session is one wizard instance: it owns the selection state, the contact
// draft and at most one in-flight estimate submission.
//
// A submission that finishes after Reset or Close is abandoned: its result
// is dropped and the session is left as it is. Close also cancels the
// context of the in-flight sink call.
type Session struct {
	ctrl   *Controller
	sink   EstimateSink
	locale string

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      State
	contact    Contact
	status     SubmissionStatus
	lastErr    error
	inFlight   bool
	generation uint64
	closed     bool
}

func NewSession(ctrl *Controller, sink EstimateSink, locale string) *Session {
	return RestoreSession(ctrl, sink, locale, InitialState())
}

// RestoreSession resumes a wizard from a previously saved state.
func RestoreSession(ctrl *Controller, sink EstimateSink, locale string, state State) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	if state.Step == "" {
		state = InitialState()
	}
	state.Quantity = ClampQuantity(state.Quantity)
	return &Session{
		ctrl:   ctrl,
		sink:   sink,
		locale: locale,
		ctx:    ctx,
		cancel: cancel,
		state:  state,
		status: SubmissionIdle,
	}
}

func (s *Session) Controller() *Controller { return s.ctrl }

func (s *Session) Locale() string { return s.locale }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an action and returns the new state. It never blocks
// on a pending submission.
func (s *Session) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.state
	}
	s.state = s.ctrl.Reduce(s.state, a)
	if a.Type == ActionReset {
		s.generation++
		s.inFlight = false
		s.status = SubmissionIdle
		s.lastErr = nil
	}
	return s.state
}

func (s *Session) CanAdvance() bool {
	return s.ctrl.CanAdvance(s.State())
}

func (s *Session) Estimate() (PriceEstimate, bool) {
	return s.ctrl.Estimate(s.State())
}

// Contact returns the last contact details passed to Submit. They survive
// failed submissions so the user does not have to enter them again.
func (s *Session) Contact() Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contact
}

func (s *Session) Status() (SubmissionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}

// Submit sends the completed estimate to the sink and waits for the result.
// Contact validation errors are returned without calling the sink.
func (s *Session) Submit(ctx context.Context, contact Contact) error {
	task, err := s.begin(ctx, contact)
	if err != nil {
		return err
	}
	return task.run()
}

// SubmitAsync starts the submission in the background. Errors that prevent
// the start are returned directly; otherwise done is called with the sink
// result, unless the submission was abandoned by Reset or Close.
func (s *Session) SubmitAsync(ctx context.Context, contact Contact, done func(error)) error {
	task, err := s.begin(ctx, contact)
	if err != nil {
		return err
	}
	task.done = done
	go func() {
		_ = task.run()
	}()
	return nil
}

// Close ends the session. Later dispatches and submissions are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.generation++
	s.inFlight = false
	s.mu.Unlock()
	s.cancel()
}

type submission struct {
	session    *Session
	ctx        context.Context
	stop       func()
	req        forms.EstimateRequest
	generation uint64
	done       func(error)
}

func (s *Session) begin(ctx context.Context, contact Contact) (*submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.inFlight {
		return nil, ErrSubmissionInFlight
	}

	s.contact = contact
	req, err := s.ctrl.EstimateRequest(s.state, contact, s.locale)
	if err != nil {
		return nil, err
	}
	if err := forms.ValidateEstimate(&req); err != nil {
		return nil, err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	stopAfter := context.AfterFunc(s.ctx, cancel)

	s.inFlight = true
	s.status = SubmissionPending
	s.lastErr = nil

	return &submission{
		session: s,
		ctx:     taskCtx,
		stop: func() {
			stopAfter()
			cancel()
		},
		req:        req,
		generation: s.generation,
	}, nil
}

func (t *submission) run() error {
	defer t.stop()

	err := t.session.sink.SubmitEstimate(t.ctx, t.req)
	if t.session.finish(t.generation, err) && t.done != nil {
		t.done(err)
	}
	return err
}

// finish records the result unless the submission was abandoned.
func (s *Session) finish(generation uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || generation != s.generation {
		return false
	}
	s.inFlight = false
	if err != nil {
		s.status = SubmissionFailed
		s.lastErr = err
		return true
	}
	s.status = SubmissionSucceeded
	return true
}
