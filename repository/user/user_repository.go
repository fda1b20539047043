package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"contacts-directory/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, data *model.UserEntity) error
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO user (name, surname, email, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?, ?, NOW())`
	updateUserQuery = `UPDATE user SET name = ?, surname = ?, email = ?, password_hash = ?, updated_at = NOW() WHERE id = ?`
	getUserBase     = `SELECT id, name, surname, email, password_hash, is_admin, created_at, updated_at FROM user WHERE true`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	return createUser(ctx, s.conn, data)
}

func (s *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.UserEntity) (*model.UserEntity, error) {
	return createUser(ctx, tx, data)
}

func createUser(ctx context.Context, execer sqlx.ExecerContext, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := execer.ExecContext(ctx, insertUserQuery, data.Name, data.Surname, data.Email, data.PasswordHash, data.IsAdmin)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) UpdateTx(ctx context.Context, tx *sqlx.Tx, data *model.UserEntity) error {
	_, err := tx.ExecContext(ctx, updateUserQuery, data.Name, data.Surname, data.Email, data.PasswordHash, data.ID)
	return err
}

// IsDuplicateEntry reports whether err is the MySQL unique-constraint
// violation (error 1062), raised when two registrations race on one email.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
