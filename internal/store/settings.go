package store

import (
	"context"
	"fmt"

	"github.com/evasion-voyages/voyages-manager/internal/dependency"
	"github.com/evasion-voyages/voyages-manager/internal/entity"
)

type settingsStore struct {
	*MYSQLStore
}

// Settings returns an object implementing the Settings interface
func (ms *MYSQLStore) Settings() dependency.Settings {
	return &settingsStore{
		MYSQLStore: ms,
	}
}

func (ms *MYSQLStore) GetSettings(ctx context.Context) ([]entity.Setting, error) {
	settings, err := QueryListNamed[entity.Setting](ctx, ms.db,
		`SELECT setting_key, setting_value FROM setting ORDER BY setting_key ASC`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list settings: %w", err)
	}
	if settings == nil {
		settings = []entity.Setting{}
	}
	return settings, nil
}

func (ms *MYSQLStore) SetSetting(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO setting (setting_key, setting_value)
	VALUES (:key, :value)
	ON DUPLICATE KEY UPDATE setting_value = :value`

	if err := ExecNamed(ctx, ms.db, query, map[string]any{
		"key":   key,
		"value": value,
	}); err != nil {
		return fmt.Errorf("can't set setting: %w", err)
	}
	return nil
}
