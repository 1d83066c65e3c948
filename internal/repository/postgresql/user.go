package postgresql

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, name, role, password_hash, manager_id, division,
	join_date, probation_date, permanent_date, sick_balance, nik, is_active,
	created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.PasswordHash,
		&u.ManagerID,
		&u.Division,
		&u.JoinDate,
		&u.ProbationDate,
		&u.PermanentDate,
		&u.SickBalance,
		&u.NIK,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// mapUniqueViolation translates unique-constraint violations into the
// domain sentinels for email and NIK conflicts.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return user.ErrEmailExists
		case strings.Contains(pgErr.ConstraintName, "nik"):
			return user.ErrNIKExists
		}
	}
	return err
}

func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, email, name, role, password_hash, manager_id, division,
			join_date, probation_date, permanent_date, sick_balance, nik, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, TRUE,
			NOW(), NOW()
		)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		u.Email,
		u.Name,
		u.Role,
		u.PasswordHash,
		u.ManagerID,
		u.Division,
		u.JoinDate,
		u.ProbationDate,
		u.PermanentDate,
		u.SickBalance,
		u.NIK,
	))
	if err != nil {
		return user.User{}, mapUniqueViolation(err)
	}
	return created, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.name, u.role, u.password_hash, u.manager_id, u.division,
			   u.join_date, u.probation_date, u.permanent_date, u.sick_balance, u.nik, u.is_active,
			   u.created_at, u.updated_at, m.name
		FROM users u
		LEFT JOIN users m ON u.manager_id = m.id
		WHERE u.id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.PasswordHash,
		&u.ManagerID,
		&u.Division,
		&u.JoinDate,
		&u.ProbationDate,
		&u.PermanentDate,
		&u.SickBalance,
		&u.NIK,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.ManagerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.name, u.role, u.password_hash, u.manager_id, u.division,
			   u.join_date, u.probation_date, u.permanent_date, u.sick_balance, u.nik, u.is_active,
			   u.created_at, u.updated_at, m.name
		FROM users u
		LEFT JOIN users m ON u.manager_id = m.id
	`
	if activeOnly {
		query += ` WHERE u.is_active = TRUE`
	}
	query += ` ORDER BY u.name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.Name,
			&u.Role,
			&u.PasswordHash,
			&u.ManagerID,
			&u.Division,
			&u.JoinDate,
			&u.ProbationDate,
			&u.PermanentDate,
			&u.SickBalance,
			&u.NIK,
			&u.IsActive,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.ManagerName,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepositoryImpl) ListManagers(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role IN ($1, $2) AND is_active = TRUE
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, user.RoleManager, user.RoleHRAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email = $1, name = $2, role = $3, manager_id = $4, division = $5,
			join_date = $6, probation_date = $7, permanent_date = $8,
			sick_balance = $9, nik = $10, is_active = $11, updated_at = NOW()
		WHERE id = $12
	`

	commandTag, err := q.Exec(ctx, query,
		u.Email,
		u.Name,
		u.Role,
		u.ManagerID,
		u.Division,
		u.JoinDate,
		u.ProbationDate,
		u.PermanentDate,
		u.SickBalance,
		u.NIK,
		u.IsActive,
		u.ID,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if commandTag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}

	// Reports of a deactivated manager lose their approval chain until HR
	// reassigns them.
	_, err = q.Exec(ctx, `
		UPDATE users SET manager_id = NULL, updated_at = NOW() WHERE manager_id = $1
	`, id)
	return err
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) HasOwnedRecords(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM requests WHERE user_id = $1)
			OR EXISTS (SELECT 1 FROM quotas WHERE user_id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (r *userRepositoryImpl) ReassignReports(ctx context.Context, oldManagerID string, newManagerID *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE users SET manager_id = $1, updated_at = NOW() WHERE manager_id = $2
	`, newManagerID, oldManagerID)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}

func (r *userRepositoryImpl) DeductSickBalance(ctx context.Context, id string, days int) error {
	q := GetQuerier(ctx, r.db)

	// The guard keeps the balance non-negative without a read-modify-write
	// race.
	commandTag, err := q.Exec(ctx, `
		UPDATE users
		SET sick_balance = sick_balance - $1, updated_at = NOW()
		WHERE id = $2 AND sick_balance >= $1
	`, days, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return user.ErrInsufficientSickBalance
	}
	return nil
}
