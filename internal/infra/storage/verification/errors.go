package verification

import "errors"

var (
	// ErrVerificationNotFound возвращается, когда активный код для номера не найден
	ErrVerificationNotFound = errors.New("verification.repository: verification not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("verification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("verification.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("verification.repository: failed to scan row")
)
