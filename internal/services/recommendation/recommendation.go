// Package recommendation реализует движок подбора тарифных планов:
// разрешение покрытия по ZIP-коду, сбор планов-кандидатов, фильтрацию
// по потребностям пользователя, сортировку по приоритетам, бюджетный
// фильтр и ограничение размера выдачи.
package recommendation

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/provider-aggregator/internal/models"
)

// Сообщения результата. Тексты являются частью контракта API.
const (
	// MsgNoProviders возвращается, когда ни один провайдер не обслуживает ZIP-код.
	MsgNoProviders = "No providers available in your area"
	// MsgNoPlans возвращается, когда у провайдеров зоны нет ни одного плана.
	MsgNoPlans = "No plans available from providers in your area"
	// MsgRecommendations возвращается при успешном подборе, в том числе
	// когда фильтры отсеяли все планы и список пуст.
	MsgRecommendations = "Based on your preferences, here are our recommendations"
)

// maxRecommendations - максимальный размер выдачи.
const maxRecommendations = 5

// Repository определяет методы хранилища, нужные движку рекомендаций.
type Repository interface {
	// ListProvidersByZip возвращает провайдеров, обслуживающих ZIP-код.
	ListProvidersByZip(ctx context.Context, zipCode string) ([]models.Provider, error)
	// ListPlansByProvider возвращает тарифные планы одного провайдера.
	ListPlansByProvider(ctx context.Context, providerID int) ([]models.Plan, error)
	// SavePreferences сохраняет предпочтения пользователя для аналитики.
	SavePreferences(ctx context.Context, prefs models.Preferences) (int, error)
}

// AnalyticsPublisher публикует события аналитики в очередь.
type AnalyticsPublisher interface {
	Publish(routingKey string, message any) error
}

// RecommendationService подбирает тарифные планы по предпочтениям пользователя.
type RecommendationService struct {
	repo      Repository
	publisher AnalyticsPublisher // может быть nil, если очередь не настроена
	log       *slog.Logger
}

// NewRecommendationService создает новый экземпляр RecommendationService.
func NewRecommendationService(repo Repository, publisher AnalyticsPublisher, log *slog.Logger) *RecommendationService {
	return &RecommendationService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Recommend выполняет подбор планов. Сохранение предпочтений и публикация
// события аналитики выполняются по принципу fire-and-forget: их ошибки
// логируются и не влияют на результат.
func (s *RecommendationService) Recommend(ctx context.Context, req models.DummyPreferences) (*models.RecommendationResult, error) {
	prefs := models.Preferences{
		SubmissionUID:          uuid.NewString(),
		ZipCode:                req.ZipCode,
		UsageType:              req.UsageType,
		UserCount:              req.UserCount,
		DeviceCount:            req.DeviceCount,
		PrioritizeSpeed:        req.PrioritizeSpeed,
		PrioritizePrice:        req.PrioritizePrice,
		PrioritizeReliability:  req.PrioritizeReliability,
		NeedsGaming:            req.NeedsGaming,
		NeedsStreaming:         req.NeedsStreaming,
		NeedsVideoConferencing: req.NeedsVideoConferencing,
		StreamingQuality:       req.StreamingQuality,
		MaxBudget:              req.MaxBudget,
	}

	s.saveForAnalytics(ctx, prefs)

	providers, err := s.repo.ListProvidersByZip(ctx, prefs.ZipCode)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return &models.RecommendationResult{
			Message:         MsgNoProviders,
			Recommendations: []models.RecommendedPlan{},
		}, nil
	}

	var candidates []models.RecommendedPlan
	for _, provider := range providers {
		plans, err := s.repo.ListPlansByProvider(ctx, provider.ID)
		if err != nil {
			return nil, err
		}
		for _, plan := range plans {
			candidates = append(candidates, models.RecommendedPlan{
				Plan:     plan,
				Provider: provider,
			})
		}
	}
	if len(candidates) == 0 {
		return &models.RecommendationResult{
			Message:         MsgNoPlans,
			Recommendations: []models.RecommendedPlan{},
		}, nil
	}

	candidates = filterByNeeds(candidates, prefs)
	sortByPriority(candidates, prefs)
	candidates = filterByBudget(candidates, prefs)

	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}
	if candidates == nil {
		candidates = []models.RecommendedPlan{}
	}

	s.log.Info("recommendations prepared",
		slog.String("zip_code", prefs.ZipCode),
		slog.Int("count", len(candidates)))

	return &models.RecommendationResult{
		Message:         MsgRecommendations,
		Recommendations: candidates,
	}, nil
}

// filterByNeeds применяет фильтры потребностей. Фильтры комбинируются
// по И: план должен пройти каждый применимый фильтр.
func filterByNeeds(candidates []models.RecommendedPlan, prefs models.Preferences) []models.RecommendedPlan {
	if prefs.NeedsGaming || prefs.NeedsVideoConferencing {
		// Играм и видеозвонкам нужна высокая скорость отдачи.
		candidates = keep(candidates, func(p models.RecommendedPlan) bool {
			return p.UploadSpeed >= 20
		})
	}

	// Мультипликативный порог стриминга применяется только при известном
	// числе пользователей: нулевое или отрицательное значение пропускает
	// фильтр, а не отбрасывает все планы.
	if prefs.NeedsStreaming && prefs.UserCount >= 1 {
		switch prefs.StreamingQuality {
		case "4K":
			candidates = keep(candidates, func(p models.RecommendedPlan) bool {
				return p.DownloadSpeed >= 25*prefs.UserCount
			})
		case "HD":
			candidates = keep(candidates, func(p models.RecommendedPlan) bool {
				return p.DownloadSpeed >= 5*prefs.UserCount
			})
		}
	}
	return candidates
}

// sortByPriority упорядочивает кандидатов согласно приоритетам пользователя.
// Приоритеты взаимоисключающие: скорость проверяется раньше цены, и
// применяется не более одной сортировки. Без приоритетов сохраняется
// порядок обхода "провайдер, затем его планы".
func sortByPriority(candidates []models.RecommendedPlan, prefs models.Preferences) {
	if prefs.PrioritizeSpeed {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].DownloadSpeed > candidates[j].DownloadSpeed
		})
	} else if prefs.PrioritizePrice {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Price < candidates[j].Price
		})
	}
}

// filterByBudget применяется после сортировки и до усечения:
// меняет состав списка, но не взаимный порядок оставшихся.
func filterByBudget(candidates []models.RecommendedPlan, prefs models.Preferences) []models.RecommendedPlan {
	if prefs.MaxBudget == nil || *prefs.MaxBudget <= 0 {
		return candidates
	}
	return keep(candidates, func(p models.RecommendedPlan) bool {
		return p.Price <= *prefs.MaxBudget
	})
}

func keep(candidates []models.RecommendedPlan, pred func(models.RecommendedPlan) bool) []models.RecommendedPlan {
	filtered := candidates[:0:0]
	for _, c := range candidates {
		if pred(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// saveForAnalytics сохраняет предпочтения в хранилище и публикует событие
// в очередь аналитики. Обе операции не влияют на ответ рекомендаций.
func (s *RecommendationService) saveForAnalytics(ctx context.Context, prefs models.Preferences) {
	if _, err := s.repo.SavePreferences(ctx, prefs); err != nil {
		s.log.Warn("failed to save preferences",
			slog.String("submission_uid", prefs.SubmissionUID), slog.Any("err", err))
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish("preferences", prefs); err != nil {
		s.log.Warn("failed to publish preferences to analytics",
			slog.String("submission_uid", prefs.SubmissionUID), slog.Any("err", err))
	}
}
