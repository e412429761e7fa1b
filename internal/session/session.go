package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/trace"
)

// Observer is told about every step log the session generates.
type Observer interface {
	RunPrepared(algorithm string, steps []trace.Step)
}

// Session owns the active Run and the view it publishes. Starting a run
// replaces the previous one; a request that fails leaves the previous run
// and its view untouched.
type Session struct {
	mu       sync.Mutex
	registry *sorting.Registry
	player   *playback.Controller
	logger   *zap.Logger
	observer Observer
	verify   bool
	listener func(*Run, trace.Frame)
	active   *Run
	view     view
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithVerify checks every generated log against the step invariants
// before it can be played.
func WithVerify(on bool) Option {
	return func(s *Session) { s.verify = on }
}

// WithListener is called with every delivered frame after the view is
// updated. It runs on the playback goroutine and must not call back into
// the Session.
func WithListener(fn func(*Run, trace.Frame)) Option {
	return func(s *Session) { s.listener = fn }
}

func New(registry *sorting.Registry, player *playback.Controller, opts ...Option) *Session {
	s := &Session{
		registry: registry,
		player:   player,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare validates input and eagerly generates the full step log.
func (s *Session) Prepare(a sorting.Algorithm, input []trace.Element) (*Run, error) {
	if err := trace.Validate(input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	gen, effective, err := s.registry.Resolve(a)
	if err != nil {
		s.logger.Warn("unsupported algorithm", zap.String("algorithm", string(a)), zap.Error(err))
		return nil, err
	}
	if effective != a {
		s.logger.Warn("algorithm not implemented yet, visualizing substitute",
			zap.String("algorithm", string(a)),
			zap.String("effective", string(effective)))
	}

	steps := gen.Generate(trace.Clone(input))
	if s.verify {
		if err := sorting.Verify(a, input, steps); err != nil {
			s.logger.Error("step log failed verification", zap.Error(err))
			return nil, err
		}
	}
	if s.observer != nil {
		s.observer.RunPrepared(string(a), steps)
	}

	r := newRun(a, effective, input, steps)
	s.logger.Debug("run prepared",
		zap.String("run", r.ID.String()),
		zap.String("algorithm", string(a)),
		zap.Int("size", len(input)),
		zap.Int("steps", len(steps)))
	return r, nil
}

// Start plays r at the given speed, cancelling whatever was playing.
func (s *Session) Start(ctx context.Context, r *Run, speed int) error {
	if r == nil || len(r.Steps) == 0 {
		return trace.ErrNoSteps
	}
	if err := playback.ValidateSpeed(speed); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// frames wait until r holds its handle, so r.Status never reads Idle
	// once the view shows one of its frames
	ready := make(chan struct{})
	h, err := s.player.Play(ctx, r.Steps, speed, func(f trace.Frame) {
		<-ready
		r.cursor.Store(int64(f.Index))
		s.view.show(r, f)
		if s.listener != nil {
			s.listener(r, f)
		}
	})
	if err != nil {
		return err
	}
	r.setHandle(h)
	close(ready)

	if prev := s.active; prev != nil && prev != r {
		s.logger.Debug("run replaced", zap.String("previous", prev.ID.String()), zap.String("run", r.ID.String()))
	}
	s.active = r
	return nil
}

// Play prepares and starts in one call.
func (s *Session) Play(ctx context.Context, a sorting.Algorithm, input []trace.Element, speed int) (*Run, error) {
	if err := playback.ValidateSpeed(speed); err != nil {
		return nil, err
	}
	r, err := s.Prepare(a, input)
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx, r, speed); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Session) Stop() {
	s.player.Stop()
}

// Reset stops playback and discards the active run.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Stop()
	s.active = nil
	s.view.clear()
}

func (s *Session) SetSpeed(speed int) error {
	r := s.Active()
	if r == nil {
		return playback.ValidateSpeed(speed)
	}
	h := r.currentHandle()
	if h == nil {
		return playback.ValidateSpeed(speed)
	}
	return h.SetSpeed(speed)
}

func (s *Session) Active() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) View() ViewState {
	return s.view.snapshot()
}

// Wait blocks until the active run stops and returns its final status.
func (s *Session) Wait() playback.Status {
	r := s.Active()
	if r == nil {
		return playback.Idle
	}
	h := r.currentHandle()
	if h == nil {
		return playback.Idle
	}
	return h.Wait()
}
