package user

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/QS-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с пользователями и доверенными устройствами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByPhone получает пользователя по номеру телефона
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"phone",
		"email",
		"name",
		"plan",
		"last_login",
		"is_active",
		"created_at",
	).
		From("users").
		Where(squirrel.Eq{"phone": phone}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanUser(executor.QueryRowContext(ctx, query, args...), "GetByPhone")
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"phone",
		"email",
		"name",
		"plan",
		"last_login",
		"is_active",
		"created_at",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanUser(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// Create создает нового пользователя
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns(
			"phone",
			"email",
			"name",
			"plan",
			"last_login",
			"is_active",
		).
		Values(
			user.Phone,
			user.Email,
			user.Name,
			user.Plan,
			user.LastLogin,
			user.IsActive,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	user.CreatedAt = createdAt.Time

	return user, nil
}

// UpdateName обновляет имя пользователя
func (r *Repository) UpdateName(ctx context.Context, id int64, name string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateName - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateName - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateName - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin фиксирует время последнего входа пользователя
func (r *Repository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("last_login", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// CreateTrustedDevice сохраняет доверенное устройство пользователя
// Хранится только хэш токена, сам токен уходит клиенту в cookie
func (r *Repository) CreateTrustedDevice(ctx context.Context, device *domain.TrustedDevice) (*domain.TrustedDevice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("trusted_devices").
		Columns(
			"user_id",
			"token_hash",
			"expires_at",
		).
		Values(
			device.UserID,
			device.TokenHash,
			device.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTrustedDevice - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&device.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTrustedDevice - execute insert: %v", ErrExecQuery, err)
	}

	device.CreatedAt = createdAt.Time

	return device, nil
}

// GetTrustedDeviceByHash получает доверенное устройство по хэшу токена
func (r *Repository) GetTrustedDeviceByHash(ctx context.Context, tokenHash string) (*domain.TrustedDevice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"token_hash",
		"expires_at",
		"created_at",
	).
		From("trusted_devices").
		Where(squirrel.Eq{"token_hash": tokenHash}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTrustedDeviceByHash - build select query: %v", ErrBuildQuery, err)
	}

	var device domain.TrustedDevice
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&device.ID,
		&device.UserID,
		&device.TokenHash,
		&device.ExpiresAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTrustedDeviceByHash - scan device: %v", ErrScanRow, err)
	}

	device.CreatedAt = createdAt.Time

	return &device, nil
}

// DeleteTrustedDevice удаляет доверенное устройство по хэшу токена
func (r *Repository) DeleteTrustedDevice(ctx context.Context, tokenHash string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("trusted_devices").
		Where(squirrel.Eq{"token_hash": tokenHash}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteTrustedDevice - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTrustedDevice - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteTrustedDevice - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

// scanUser сканирует одну строку пользователя
func (r *Repository) scanUser(row *sql.Row, op string) (*domain.User, error) {
	var user domain.User
	var email, name sql.NullString
	var lastLogin, createdAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Phone,
		&email,
		&name,
		&user.Plan,
		&lastLogin,
		&user.IsActive,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	if email.Valid {
		user.Email = &email.String
	}
	if name.Valid {
		user.Name = &name.String
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	user.CreatedAt = createdAt.Time

	return &user, nil
}
