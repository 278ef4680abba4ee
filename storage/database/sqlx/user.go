package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/user"
)

type userRow struct {
	ID             string       `db:"id"`
	Name           string       `db:"name"`
	Email          string       `db:"email"`
	WhatsappNumber string       `db:"whatsapp_number"`
	Country        string       `db:"country"`
	City           string       `db:"city"`
	IsActive       bool         `db:"is_active"`
	PasswordHash   []byte       `db:"password_hash"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
	LastLogin      sql.NullTime `db:"last_login"`
}

func (r userRow) toUser() user.User {
	usr := user.User{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		WhatsappNumber: r.WhatsappNumber,
		Country:        r.Country,
		City:           r.City,
		PasswordHash:   r.PasswordHash,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	usr.SetActive(r.IsActive)
	if r.LastLogin.Valid {
		usr.LastLogin = r.LastLogin.Time
	}
	return usr
}

func toRow(usr user.User) userRow {
	row := userRow{
		ID:             usr.ID,
		Name:           usr.Name,
		Email:          usr.Email,
		WhatsappNumber: usr.WhatsappNumber,
		Country:        usr.Country,
		City:           usr.City,
		IsActive:       usr.Active(),
		PasswordHash:   usr.PasswordHash,
		CreatedAt:      usr.CreatedAt,
		UpdatedAt:      usr.UpdatedAt,
	}
	if !usr.LastLogin.IsZero() {
		row.LastLogin = sql.NullTime{Time: usr.LastLogin, Valid: true}
	}
	return row
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	query := `SELECT COUNT(*) FROM "user" WHERE email = $1`
	args := []interface{}{email}
	if len(excludedUsers) > 0 {
		excludedIDs := make([]string, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			excludedIDs = append(excludedIDs, usr.ID)
		}
		var err error
		query, args, err = sqlx.In(`SELECT COUNT(*) FROM "user" WHERE email = ? AND id NOT IN (?)`, email, excludedIDs)
		if err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
		query = repo.db.Rebind(query)
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := toRow(usr)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO "user" (id, name, email, whatsapp_number, country, city, is_active, password_hash, created_at, updated_at, last_login)
		VALUES (:id, :name, :email, :whatsapp_number, :country, :city, :is_active, :password_hash, :created_at, :updated_at, :last_login)`,
		row,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	if filter.IsEmpty() {
		return user.User{}, user.ErrNotFound
	}

	query := `SELECT * FROM "user" WHERE id = $1`
	arg := filter.ID
	if filter.ID == "" {
		query = `SELECT * FROM "user" WHERE email = $1`
		arg = filter.Email
	}

	var row userRow
	if err := repo.db.GetContext(ctx, &row, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM "user" ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := toRow(usr)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE "user"
		SET name = :name, email = :email, whatsapp_number = :whatsapp_number, country = :country,
		    city = :city, is_active = :is_active, password_hash = :password_hash,
		    updated_at = :updated_at, last_login = :last_login
		WHERE id = :id`,
		row,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	updated, err := repo.UpdateUser(ctx, usr)
	if err == nil {
		return updated, nil
	}
	if errors.Cause(err) != user.ErrNotFound {
		return user.User{}, err
	}
	return repo.CreateUser(ctx, usr)
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM "user" WHERE id = $1`, id)
	return errors.Wrap(err, "deleting user")
}
