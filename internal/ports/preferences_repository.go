package ports

import (
	"context"

	"github.com/architeacher/gadgets/internal/domain/model"
)

// PreferencesRepository persists the UI preferences of the single catalog owner.
type PreferencesRepository interface {
	// Get returns model.DefaultPreferences when nothing was saved yet.
	Get(ctx context.Context) (model.Preferences, error)

	Save(ctx context.Context, preferences model.Preferences) error
}
