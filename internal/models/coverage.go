package models

// Coverage представляет связь "провайдер - ZIP-код": наличие сервиса
// провайдера в заданной зоне. На пару (ProviderID, ZipCode) существует
// не более одной активной записи.
type Coverage struct {
	ID         int    `json:"id"`
	ProviderID int    `json:"provider_id"`
	ZipCode    string `json:"zip_code"`
	HasService bool   `json:"has_service"`
}

// DummyCoverage используется для приёма данных зоны покрытия из JSON-запроса.
// HasService опционален: отсутствие трактуется как true.
type DummyCoverage struct {
	ProviderID int    `json:"provider_id" validate:"required,gt=0"`
	ZipCode    string `json:"zip_code" validate:"required,len=5,numeric"`
	HasService *bool  `json:"has_service,omitempty"`
}

// DummyRemoveCoverage используется для приёма запроса на удаление записи покрытия.
type DummyRemoveCoverage struct {
	ProviderID int    `json:"provider_id" validate:"required,gt=0"`
	ZipCode    string `json:"zip_code" validate:"required,len=5,numeric"`
}
