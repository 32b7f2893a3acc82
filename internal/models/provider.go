// Package models содержит доменные структуры провайдеров, тарифных планов,
// зон покрытия и пользовательских предпочтений, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

// Provider представляет интернет-провайдера.
// Поля Logo и Website опциональны: nil означает, что данные не заполнены.
type Provider struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Logo    *string `json:"logo"`
	Website *string `json:"website"`
}

// DummyProvider используется для приёма данных провайдера из JSON-запроса
// до их валидации и сохранения.
type DummyProvider struct {
	Name    string  `json:"name" validate:"required"` // Название провайдера
	Logo    *string `json:"logo,omitempty"`
	Website *string `json:"website,omitempty"`
}

// UpdateProvider описывает частичное обновление провайдера:
// nil-поле означает "не менять".
type UpdateProvider struct {
	Name    *string `json:"name,omitempty"`
	Logo    *string `json:"logo,omitempty"`
	Website *string `json:"website,omitempty"`
}
