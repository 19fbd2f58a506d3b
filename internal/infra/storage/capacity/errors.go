package capacity

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация вместимости не найдена
	// Вызывающая сторона в этом случае применяет значение по умолчанию
	ErrConfigNotFound = errors.New("capacity.repository: capacity config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("capacity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("capacity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("capacity.repository: failed to scan row")
)
