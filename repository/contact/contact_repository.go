package contact

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"contacts-directory/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ContactRepository interface {
	Create(ctx context.Context, data *model.ContactEntity) (*model.ContactEntity, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.ContactEntity) (*model.ContactEntity, error)
	Get(ctx context.Context, filter *model.ContactFilter) (*model.ContactEntity, error)
	List(ctx context.Context, filter *model.ContactFilter) ([]model.ContactEntity, error)
	UpdateFields(ctx context.Context, id uint64, patch *model.ContactPatch) error
	SetPublic(ctx context.Context, id uint64, public bool) error
	SetHidden(ctx context.Context, id uint64, hidden bool) error
	Delete(ctx context.Context, id uint64) error
	SyncProxyTx(ctx context.Context, tx *sqlx.Tx, ownerID uint64, name, surname, email string) error
}

func NewContactRepository(conn *sqlx.DB) ContactRepository {
	return &SQL{conn: conn}
}

const (
	insertContactQuery = `INSERT INTO contact (name, surname, company, address, phones, email, owner_id, is_public, is_hidden, is_user_proxy, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`
	getContactBase     = `SELECT id, name, surname, company, address, phones, email, owner_id, is_public, is_hidden, is_user_proxy, created_at, updated_at FROM contact WHERE true`
	setPublicQuery     = `UPDATE contact SET is_public = ?, updated_at = NOW() WHERE id = ?`
	setHiddenQuery     = `UPDATE contact SET is_hidden = ?, updated_at = NOW() WHERE id = ?`
	deleteContactQuery = `DELETE FROM contact WHERE id = ?`
	syncProxyQuery     = `UPDATE contact SET name = ?, surname = ?, email = ?, updated_at = NOW() WHERE owner_id = ? AND is_user_proxy = true`

	// Views return contacts ordered by surname then name, ties broken by
	// insertion order (the autoincrement id). The binary collation keeps
	// the sort case-sensitive regardless of the table's default.
	listOrderClause = ` ORDER BY surname COLLATE utf8mb4_bin ASC, name COLLATE utf8mb4_bin ASC, id ASC`
)

func (s *SQL) Create(ctx context.Context, data *model.ContactEntity) (*model.ContactEntity, error) {
	return createContact(ctx, s.conn, data)
}

func (s *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.ContactEntity) (*model.ContactEntity, error) {
	return createContact(ctx, tx, data)
}

func createContact(ctx context.Context, execer sqlx.ExecerContext, data *model.ContactEntity) (*model.ContactEntity, error) {
	result, err := execer.ExecContext(ctx, insertContactQuery,
		data.Name, data.Surname, data.Company, data.Address, data.Phones, data.Email,
		data.OwnerID, data.IsPublic, data.IsHidden, data.IsUserProxy)
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

// buildFilterQuery appends the filter's constraints to the base select.
func buildFilterQuery(filter *model.ContactFilter) (string, []any) {
	query := getContactBase
	args := make([]any, 0, 5)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.OwnerID != 0 {
		query += " AND owner_id = ?"
		args = append(args, filter.OwnerID)
	}
	if filter.IsPublic != nil {
		query += " AND is_public = ?"
		args = append(args, *filter.IsPublic)
	}
	if filter.IsHidden != nil {
		query += " AND is_hidden = ?"
		args = append(args, *filter.IsHidden)
	}
	if filter.IsUserProxy != nil {
		query += " AND is_user_proxy = ?"
		args = append(args, *filter.IsUserProxy)
	}
	return query, args
}

func (s *SQL) Get(ctx context.Context, filter *model.ContactFilter) (*model.ContactEntity, error) {
	query, args := buildFilterQuery(filter)

	var entity model.ContactEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, filter *model.ContactFilter) ([]model.ContactEntity, error) {
	query, args := buildFilterQuery(filter)
	query += listOrderClause

	contacts := make([]model.ContactEntity, 0)
	if err := s.conn.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, err
	}
	return contacts, nil
}

// buildPatchQuery turns the non-nil patch fields into an UPDATE statement.
// Returns ok=false when the patch is empty.
func buildPatchQuery(id uint64, patch *model.ContactPatch) (string, []any, bool) {
	query := `UPDATE contact SET `
	args := make([]any, 0, 8)

	appendSet := func(column string, value any) {
		if len(args) > 0 {
			query += ", "
		}
		query += column + " = ?"
		args = append(args, value)
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.Surname != nil {
		appendSet("surname", *patch.Surname)
	}
	if patch.Company != nil {
		appendSet("company", *patch.Company)
	}
	if patch.Address != nil {
		appendSet("address", *patch.Address)
	}
	if patch.Phones != nil {
		appendSet("phones", *patch.Phones)
	}
	if patch.Email != nil {
		appendSet("email", *patch.Email)
	}
	if patch.IsPublic != nil {
		appendSet("is_public", *patch.IsPublic)
	}
	if len(args) == 0 {
		return "", nil, false
	}

	query += ", updated_at = NOW() WHERE id = ?"
	args = append(args, id)
	return query, args, true
}

func (s *SQL) UpdateFields(ctx context.Context, id uint64, patch *model.ContactPatch) error {
	query, args, ok := buildPatchQuery(id, patch)
	if !ok {
		return nil
	}
	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *SQL) SetPublic(ctx context.Context, id uint64, public bool) error {
	_, err := s.conn.ExecContext(ctx, setPublicQuery, public, id)
	return err
}

func (s *SQL) SetHidden(ctx context.Context, id uint64, hidden bool) error {
	_, err := s.conn.ExecContext(ctx, setHiddenQuery, hidden, id)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, deleteContactQuery, id)
	return err
}

// SyncProxyTx keeps the user's proxy contact aligned with the account
// profile inside the same transaction as the profile write.
func (s *SQL) SyncProxyTx(ctx context.Context, tx *sqlx.Tx, ownerID uint64, name, surname, email string) error {
	_, err := tx.ExecContext(ctx, syncProxyQuery, name, surname, email, ownerID)
	return err
}
