package models

// Preferences представляет сохранённые предпочтения пользователя,
// на основе которых подбираются рекомендации. SubmissionUID используется
// для корреляции записи с событием в очереди аналитики.
type Preferences struct {
	ID                     int    `json:"id"`
	SubmissionUID          string `json:"submission_uid"`
	ZipCode                string `json:"zip_code"`
	UsageType              string `json:"usage_type"`
	UserCount              int    `json:"user_count"`
	DeviceCount            *int   `json:"device_count"`
	PrioritizeSpeed        bool   `json:"prioritize_speed"`
	PrioritizePrice        bool   `json:"prioritize_price"`
	PrioritizeReliability  bool   `json:"prioritize_reliability"`
	NeedsGaming            bool   `json:"needs_gaming"`
	NeedsStreaming         bool   `json:"needs_streaming"`
	NeedsVideoConferencing bool   `json:"needs_video_conferencing"`
	StreamingQuality       string `json:"streaming_quality"` // SD, HD или 4K
	MaxBudget              *int   `json:"max_budget"`        // В центах
}

// DummyPreferences используется для приёма предпочтений из JSON-запроса
// до их валидации и преобразования в Preferences.
type DummyPreferences struct {
	ZipCode                string `json:"zip_code" validate:"required,len=5,numeric"`
	UsageType              string `json:"usage_type" validate:"required"`
	UserCount              int    `json:"user_count" validate:"required,gt=0"`
	DeviceCount            *int   `json:"device_count,omitempty" validate:"omitempty,gt=0"`
	PrioritizeSpeed        bool   `json:"prioritize_speed,omitempty"`
	PrioritizePrice        bool   `json:"prioritize_price,omitempty"`
	PrioritizeReliability  bool   `json:"prioritize_reliability,omitempty"`
	NeedsGaming            bool   `json:"needs_gaming,omitempty"`
	NeedsStreaming         bool   `json:"needs_streaming,omitempty"`
	NeedsVideoConferencing bool   `json:"needs_video_conferencing,omitempty"`
	StreamingQuality       string `json:"streaming_quality,omitempty" validate:"omitempty,oneof=SD HD 4K"`
	MaxBudget              *int   `json:"max_budget,omitempty" validate:"omitempty,gt=0"`
}

// RecommendedPlan - тарифный план, дополненный данными своего провайдера.
// Используется в ответах рекомендаций и сравнения планов.
type RecommendedPlan struct {
	Plan
	Provider Provider `json:"provider"`
}

// RecommendationResult - итог работы движка рекомендаций: сообщение
// и упорядоченный список из не более чем пяти планов.
type RecommendationResult struct {
	Message         string            `json:"message"`
	Recommendations []RecommendedPlan `json:"recommendations"`
}
