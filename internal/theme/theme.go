// Package theme owns the light/dark mode of the front end.
package theme

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/Zachkp/portfolio/internal/storage"
)

// Mode is either Light or Dark.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("unknown theme mode %q", s)
}

func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Reader is the read capability handed to rendering code.
type Reader interface {
	Read() Mode
}

// Toggler is the write capability handed to the theme controls.
type Toggler interface {
	Toggle() Mode
	Set(Mode) error
}

// DocumentRoot mirrors the attributes the styling layer keys off:
// data-theme on the root element and the "dark" class.
type DocumentRoot struct {
	DataTheme string
	Class     string
}

// Preference reports the OS-level preferred mode, if one is known.
type Preference func() (Mode, bool)

// Service holds the current Mode. There is one writer path (Toggle/Set);
// reads may come from any goroutine.
type Service struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	mode      Mode
	root      DocumentRoot
	observers []func(Mode)

	store  storage.Store
	logger *slog.Logger
}

type options struct {
	preference Preference
	logger     *slog.Logger
}

type Option func(*options)

func WithPreference(p Preference) Option {
	return func(o *options) {
		o.preference = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New resolves the initial mode from the persisted value, then the OS
// preference, then Light, and applies it.
func New(ctx context.Context, store storage.Store, opts ...Option) *Service {
	o := &options{
		preference: EnvPreference,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if store == nil {
		store = storage.Unavailable{}
	}

	s := &Service{store: store, logger: o.logger}
	s.apply(ctx, s.initialMode(ctx, o.preference))
	return s
}

func (s *Service) initialMode(ctx context.Context, pref Preference) Mode {
	if saved, ok, err := s.store.Get(ctx, storage.KeyTheme); err != nil {
		s.logger.Debug("theme storage unavailable", slog.String("error", err.Error()))
	} else if ok {
		if m, err := ParseMode(saved); err == nil {
			return m
		}
		s.logger.Warn("ignoring invalid stored theme", slog.String("value", saved))
	}
	if pref != nil {
		if m, ok := pref(); ok && m.Valid() {
			return m
		}
	}
	return Light
}

// Read returns the current mode.
func (s *Service) Read() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Root returns the document root attributes for the current mode.
func (s *Service) Root() DocumentRoot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// Toggle flips the mode and returns the new one.
func (s *Service) Toggle() Mode {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Read().Opposite()
	s.apply(context.Background(), next)
	return next
}

// Set switches to m. Invalid modes are rejected and leave state unchanged.
func (s *Service) Set(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown theme mode %q", m)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.apply(context.Background(), m)
	return nil
}

// OnChange registers fn to run after every transition. fn must not call
// Toggle or Set.
func (s *Service) OnChange(fn func(Mode)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// apply performs a transition: state and document root, durable storage
// (best effort), observers. Callers hold writeMu.
func (s *Service) apply(ctx context.Context, m Mode) {
	root := DocumentRoot{DataTheme: string(m)}
	if m == Dark {
		root.Class = "dark"
	}

	s.mu.Lock()
	s.mode = m
	s.root = root
	observers := append([]func(Mode){}, s.observers...)
	s.mu.Unlock()

	if err := s.store.Set(ctx, storage.KeyTheme, string(m)); err != nil {
		s.logger.Debug("theme not persisted", slog.String("mode", string(m)), slog.String("error", err.Error()))
	}

	for _, fn := range observers {
		fn(m)
	}
}

// EnvPreference reads the terminal/desktop convention COLORFGBG
// ("fg;bg", background 0-6 or 8 means dark).
func EnvPreference() (Mode, bool) {
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return "", false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", false
	}
	if bg <= 6 || bg == 8 {
		return Dark, true
	}
	return Light, true
}

// Fixed returns a Preference that always reports m.
func Fixed(m Mode) Preference {
	return func() (Mode, bool) { return m, true }
}
