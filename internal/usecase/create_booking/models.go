package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64  // ID пользователя
	EntityType    string // "attraction" | "combo"
	VirtualSlotID string // Идентификатор виртуального слота ({entity_id}-{YYYYMMDD}-{HH})
	Quantity      int    // Количество мест
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64     // ID созданного бронирования
	Reference     string    // Внешний идентификатор (uuid)
	UserID        int64     // ID пользователя
	EntityType    string    // Тип сущности
	EntityID      int64     // ID сущности
	VirtualSlotID string    // Идентификатор слота
	Date          time.Time // Дата бронирования
	StartHour     int       // Стартовый час слота
	DurationHours int       // Длительность в часах
	Quantity      int       // Количество мест
	Status        string    // Статус бронирования

	// Денормализованная разбивка цены
	EntityName      string  // Название сущности на момент бронирования
	BasePrice       float64 // Базовая цена за место
	UnitPrice       float64 // Цена за место после правил
	DiscountAmount  float64 // Суммарная скидка
	DiscountPercent float64 // Эффективный процент скидки
	TotalPrice      float64 // Итоговая стоимость
	AppliedRuleID   *int64  // Применённое ценовое правило
	AppliedOfferID  *int64  // Применённое акционное правило

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
