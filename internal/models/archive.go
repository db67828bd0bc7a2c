package models

import "time"

// ArchiveEntry — обезличенная запись о завершённом подборе для аналитики:
// какой итог получил пользователь при каких ключевых параметрах. Сырые
// ответы сессии не сохраняются — только агрегаты выбранной пары.
type ArchiveEntry struct {
	SessionID     string       // Идентификатор сессии (uuid, без привязки к пользователю)
	FiscalYear    int          // Год таблиц правил, по которым шёл расчёт
	Form          BusinessForm // Рекомендованная форма
	Regime        TaxRegime    // Рекомендованный режим
	Gross         Money        // Выручка
	Tax           Money        // Налог
	Contributions Money        // Взносы
	Net           Money        // Чистый доход
	CreatedAt     time.Time    // Момент завершения подбора
}
