package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// SavePreferences сохраняет отправленные пользователем предпочтения
// для последующей аналитики и возвращает ID записи.
func (s *Storage) SavePreferences(ctx context.Context, prefs models.Preferences) (int, error) {
	const op = "storage.SavePreferences"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_preferences (submission_uid, zip_code, usage_type,
			      user_count, device_count, prioritize_speed, prioritize_price,
			      prioritize_reliability, needs_gaming, needs_streaming,
			      needs_video_conferencing, streaming_quality, max_budget)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		prefs.SubmissionUID, prefs.ZipCode, prefs.UsageType, prefs.UserCount,
		prefs.DeviceCount, prefs.PrioritizeSpeed, prefs.PrioritizePrice,
		prefs.PrioritizeReliability, prefs.NeedsGaming, prefs.NeedsStreaming,
		prefs.NeedsVideoConferencing, nullIfEmpty(prefs.StreamingQuality),
		prefs.MaxBudget).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
