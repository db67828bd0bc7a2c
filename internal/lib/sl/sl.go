// Package sl содержит хелперы для структурированного логирования через slog.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error", чтобы все слои
// приложения логировали ошибки одним и тем же полем.
//
// Пример:
//
//	log.Warn("failed to archive recommendation", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
