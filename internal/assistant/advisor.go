// Package assistant содержит консультанта по вопросам интернет-сервиса.
//
// Advisor отвечает на вопросы пользователя. Если подключен внешний
// AI-клиент, ответ генерирует он; без клиента используется набор
// правил по ключевым словам.
package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/provider-aggregator/internal/lib/sl"
)

// AIClient описывает внешний сервис генерации ответов.
type AIClient interface {
	Answer(ctx context.Context, message, userContext string) (string, error)
}

// Reply содержит ответ консультанта и признак того, что его сгенерировал AI.
type Reply struct {
	Message string `json:"message"`
	IsAI    bool   `json:"is_ai"`
}

// Advisor отвечает на вопросы об интернет-сервисе.
type Advisor struct {
	ai  AIClient // nil, если AI не сконфигурирован
	log *slog.Logger
}

// NewAdvisor создает консультанта. Клиент ai может быть nil: тогда
// все ответы строятся по правилам.
func NewAdvisor(ai AIClient, log *slog.Logger) *Advisor {
	return &Advisor{ai: ai, log: log}
}

// Answer возвращает ответ на вопрос пользователя. При недоступности
// AI-клиента происходит откат на ответ по правилам.
func (a *Advisor) Answer(ctx context.Context, message, userContext string) (*Reply, error) {
	if a.ai != nil {
		answer, err := a.ai.Answer(ctx, message, userContext)
		if err == nil {
			return &Reply{Message: answer, IsAI: true}, nil
		}
		a.log.Warn("ai client failed, falling back to rules", sl.Err(err))
	}
	return &Reply{Message: ruleBasedAnswer(message), IsAI: false}, nil
}

// ruleBasedAnswer подбирает ответ по ключевым словам вопроса.
func ruleBasedAnswer(message string) string {
	input := strings.ToLower(message)

	switch {
	case containsAny(input, "fiber", "cable", "dsl"):
		return "Fiber offers the fastest speeds (up to 1 Gbps or more) with symmetrical upload/download, " +
			"cable provides good speeds (50-500 Mbps) but asymmetrical performance, while DSL is slower " +
			"(5-100 Mbps) but often more widely available in rural areas."
	case containsAny(input, "speed", "fast"):
		return "For basic web browsing and email, 25 Mbps is sufficient. For HD streaming, aim for 50 Mbps. " +
			"For multiple users or 4K streaming, 100+ Mbps is recommended. For gaming and large file " +
			"transfers, 300+ Mbps provides the best experience."
	case containsAny(input, "gaming"):
		return "For gaming, low latency (ping) is often more important than raw speed. Look for plans with " +
			"ping under 50ms. Fiber connections typically offer the best latency. I'd recommend at least " +
			"100 Mbps download and 10 Mbps upload for gaming while others use the network."
	case containsAny(input, "streaming", "netflix", "youtube"):
		return "For streaming video: SD quality needs 3-5 Mbps, HD needs 5-10 Mbps, and 4K needs 25-35 Mbps " +
			"per stream. If multiple people stream simultaneously, add these requirements together."
	case containsAny(input, "router", "wifi"):
		return "For the best Wi-Fi coverage, place your router centrally in your home, elevated if possible. " +
			"Avoid placing it near metal objects, microwaves, or thick walls. Consider a mesh network system " +
			"for larger homes. Make sure to use a secure password and WPA3 encryption if available."
	default:
		return "I'd be happy to help with your internet service questions. You can ask me about choosing " +
			"between providers, understanding internet technologies, troubleshooting connection issues, " +
			"or optimizing your home network."
	}
}

func containsAny(input string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}
