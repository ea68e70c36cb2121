package service

import (
	"context"
	"fmt"

	"artnotifier/internal/entity"
	"artnotifier/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *NotifyService) GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.PreferenceMatrix, error) {
	const op = "service.NotifyService.GetPreferences"

	prefs, err := s.prefs.GetPreferences(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return prefs, nil
}

// UpdatePreferences replaces the whole matrix. Unknown category keys are
// rejected before anything is written.
func (s *NotifyService) UpdatePreferences(
	ctx context.Context,
	userID uuid.UUID,
	prefs entity.PreferenceMatrix,
) (*entity.PreferenceMatrix, error) {
	const op = "service.NotifyService.UpdatePreferences"

	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.prefs.SetPreferences(ctx, nil, userID, prefs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Ctx(ctx, s.log).Info("preferences updated", zap.String("user_id", userID.String()))
	return &prefs, nil
}

// IsEnabled answers the same question Dispatch asks, including the
// fail-open behavior on lookup errors.
func (s *NotifyService) IsEnabled(ctx context.Context, userID uuid.UUID, channel entity.Channel, category entity.Category) bool {
	return s.allowed(ctx, userID, channel, category)
}
