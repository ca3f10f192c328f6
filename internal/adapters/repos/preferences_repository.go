package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/infrastructure"
)

const preferencesKey = "preferences:v1"

// PreferencesRepository keeps the owner's preferences in KeyDB without expiry.
type PreferencesRepository struct {
	client *infrastructure.KeydbClient
}

func NewPreferencesRepository(client *infrastructure.KeydbClient) *PreferencesRepository {
	return &PreferencesRepository{client: client}
}

func (r *PreferencesRepository) Get(ctx context.Context) (model.Preferences, error) {
	data, err := r.client.Get(ctx, preferencesKey)
	if err != nil {
		if errors.Is(err, infrastructure.ErrCacheMiss) {
			return model.DefaultPreferences(), nil
		}

		return model.Preferences{}, fmt.Errorf("getting preferences: %w", err)
	}

	preferences := model.DefaultPreferences()
	if err := json.Unmarshal(data, &preferences); err != nil {
		return model.Preferences{}, fmt.Errorf("unmarshalling preferences: %w", err)
	}

	return preferences, nil
}

func (r *PreferencesRepository) Save(ctx context.Context, preferences model.Preferences) error {
	data, err := json.Marshal(preferences)
	if err != nil {
		return fmt.Errorf("marshalling preferences: %w", err)
	}

	if err := r.client.Set(ctx, preferencesKey, data, 0); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}

	return nil
}
