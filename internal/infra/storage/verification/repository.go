package verification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/QS-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий кодов подтверждения телефона
// Для номера активен только последний код - Create вызывается
// после DeleteByPhone, чтобы старые коды не принимались
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кодов подтверждения
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый код подтверждения
func (r *Repository) Create(ctx context.Context, v *domain.PhoneVerification) (*domain.PhoneVerification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("phone_verifications").
		Columns(
			"phone",
			"code_hash",
			"attempts",
			"expires_at",
		).
		Values(
			v.Phone,
			v.CodeHash,
			v.Attempts,
			v.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	v.CreatedAt = createdAt.Time

	return v, nil
}

// GetLatestByPhone получает последний код подтверждения для номера
func (r *Repository) GetLatestByPhone(ctx context.Context, phone string) (*domain.PhoneVerification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"phone",
		"code_hash",
		"attempts",
		"expires_at",
		"created_at",
	).
		From("phone_verifications").
		Where(squirrel.Eq{"phone": phone}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.PhoneVerification
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.Phone,
		&v.CodeHash,
		&v.Attempts,
		&v.ExpiresAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVerificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByPhone - scan verification: %v", ErrScanRow, err)
	}

	v.CreatedAt = createdAt.Time

	return &v, nil
}

// DecrementAttempts списывает одну попытку ввода кода
// Возвращает оставшееся число попыток
func (r *Repository) DecrementAttempts(ctx context.Context, id int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("phone_verifications").
		Set("attempts", squirrel.Expr("attempts - 1")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"attempts": 0}).
		Suffix("RETURNING attempts").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DecrementAttempts - build update query: %v", ErrBuildQuery, err)
	}

	var attempts int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&attempts)

	if err == sql.ErrNoRows {
		return 0, ErrVerificationNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: DecrementAttempts - execute update: %v", ErrExecQuery, err)
	}

	return attempts, nil
}

// Delete удаляет код подтверждения после успешного входа
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("phone_verifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVerificationNotFound
	}

	return nil
}

// DeleteByPhone удаляет все коды подтверждения для номера
// Вызывается перед выдачей нового кода
func (r *Repository) DeleteByPhone(ctx context.Context, phone string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("phone_verifications").
		Where(squirrel.Eq{"phone": phone}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByPhone - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByPhone - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
