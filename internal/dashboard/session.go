package dashboard

import (
	"context"
	"fmt"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/pkg/logger"
)

// Session carries the preferences that outlive a page visit.
type Session struct {
	store  ports.PreferencesAPI
	logger logger.Logger
	prefs  model.Preferences
}

// Open loads the saved preferences. An unreachable store is not fatal; the
// session starts in light mode.
func Open(ctx context.Context, store ports.PreferencesAPI, log logger.Logger) *Session {
	s := &Session{
		store:  store,
		logger: log.Component("dashboard.session"),
		prefs:  model.DefaultPreferences(),
	}

	prefs, err := store.GetPreferences(ctx)
	if err != nil {
		warnLog := s.logger.WithContext(ctx)
		warnLog.Warn().Err(err).Msg("failed to load preferences, using defaults")

		return s
	}

	s.prefs = prefs

	return s
}

func (s *Session) DarkMode() bool {
	return s.prefs.DarkMode
}

// SetDarkMode saves only when the value changes. The new value is kept even
// when saving fails.
func (s *Session) SetDarkMode(ctx context.Context, enabled bool) error {
	if s.prefs.DarkMode == enabled {
		return nil
	}

	s.prefs.DarkMode = enabled

	if err := s.store.SavePreferences(ctx, s.prefs); err != nil {
		warnLog := s.logger.WithContext(ctx)
		warnLog.Warn().Err(err).Bool("dark_mode", enabled).Msg("failed to save preferences")

		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}

func (s *Session) ToggleDarkMode(ctx context.Context) error {
	return s.SetDarkMode(ctx, !s.prefs.DarkMode)
}
