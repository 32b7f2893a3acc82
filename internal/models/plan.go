package models

// Plan представляет тарифный план провайдера.
// Скорости задаются в Мбит/с, все денежные поля - в центах.
// Nil в опциональных полях означает: ContractLength - без контракта,
// DataCap - безлимит, Features - список возможностей неизвестен
// (в отличие от пустого списка - "возможностей явно нет").
type Plan struct {
	ID              int      `json:"id"`
	ProviderID      int      `json:"provider_id"`
	Name            string   `json:"name"`
	DownloadSpeed   int      `json:"download_speed"`
	UploadSpeed     int      `json:"upload_speed"`
	Price           int      `json:"price"`
	Promo           *string  `json:"promo"`
	ContractLength  *int     `json:"contract_length"`
	DataCap         *int     `json:"data_cap"`
	EquipmentFee    *int     `json:"equipment_fee"`
	InstallationFee *int     `json:"installation_fee"`
	Features        []string `json:"features"`
}

// DummyPlan используется для приёма данных тарифного плана из JSON-запроса
// до их валидации и сохранения.
type DummyPlan struct {
	ProviderID      int      `json:"provider_id" validate:"required,gt=0"`
	Name            string   `json:"name" validate:"required"`
	DownloadSpeed   int      `json:"download_speed" validate:"required,gt=0"` // Мбит/с
	UploadSpeed     int      `json:"upload_speed" validate:"required,gt=0"`   // Мбит/с
	Price           int      `json:"price" validate:"required,gt=0"`          // В центах
	Promo           *string  `json:"promo,omitempty"`
	ContractLength  *int     `json:"contract_length,omitempty" validate:"omitempty,gt=0"`
	DataCap         *int     `json:"data_cap,omitempty" validate:"omitempty,gt=0"`
	EquipmentFee    *int     `json:"equipment_fee,omitempty" validate:"omitempty,gte=0"`
	InstallationFee *int     `json:"installation_fee,omitempty" validate:"omitempty,gte=0"`
	Features        []string `json:"features,omitempty"`
}

// UpdatePlan описывает частичное обновление тарифного плана:
// nil-поле означает "не менять". Для Features nil-указатель означает
// "оставить как есть", указатель на пустой срез - "явно пустой список".
type UpdatePlan struct {
	Name            *string   `json:"name,omitempty"`
	DownloadSpeed   *int      `json:"download_speed,omitempty" validate:"omitempty,gt=0"`
	UploadSpeed     *int      `json:"upload_speed,omitempty" validate:"omitempty,gt=0"`
	Price           *int      `json:"price,omitempty" validate:"omitempty,gt=0"`
	Promo           *string   `json:"promo,omitempty"`
	ContractLength  *int      `json:"contract_length,omitempty"`
	DataCap         *int      `json:"data_cap,omitempty"`
	EquipmentFee    *int      `json:"equipment_fee,omitempty"`
	InstallationFee *int      `json:"installation_fee,omitempty"`
	Features        *[]string `json:"features,omitempty"`
}
