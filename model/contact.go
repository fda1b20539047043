package model

import (
	"encoding/json"
	"time"

	"contacts-directory/constant"
	"contacts-directory/utils/errors"
)

// ContactEntity represents the contact table entity. IsUserProxy marks the
// directory shadow auto-created for a registered user; proxy rows never
// appear in listings and are excluded from delete/public-toggle.
type ContactEntity struct {
	ID          uint64     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Surname     string     `db:"surname" json:"surname"`
	Company     string     `db:"company" json:"company,omitempty"`
	Address     string     `db:"address" json:"address,omitempty"`
	Phones      string     `db:"phones" json:"phones,omitempty"`
	Email       string     `db:"email" json:"email"`
	OwnerID     uint64     `db:"owner_id" json:"owner_id"`
	IsPublic    bool       `db:"is_public" json:"is_public"`
	IsHidden    bool       `db:"is_hidden" json:"is_hidden"`
	IsUserProxy bool       `db:"is_user_proxy" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ContactFilter for querying contacts. Pointer fields are tri-state:
// nil means "no constraint".
type ContactFilter struct {
	ID          uint64
	OwnerID     uint64
	IsPublic    *bool
	IsHidden    *bool
	IsUserProxy *bool
}

// Matches reports whether a contact satisfies every constraint of the
// filter. Mirrors the SQL predicate the repository builds from it.
func (f *ContactFilter) Matches(c *ContactEntity) bool {
	if f.ID != 0 && c.ID != f.ID {
		return false
	}
	if f.OwnerID != 0 && c.OwnerID != f.OwnerID {
		return false
	}
	if f.IsPublic != nil && c.IsPublic != *f.IsPublic {
		return false
	}
	if f.IsHidden != nil && c.IsHidden != *f.IsHidden {
		return false
	}
	if f.IsUserProxy != nil && c.IsUserProxy != *f.IsUserProxy {
		return false
	}
	return true
}

// CreateContactRequest for adding a contact
type CreateContactRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Company  string `json:"company"`
	Address  string `json:"address"`
	Phones   string `json:"phones"`
	Email    string `json:"email" validate:"required,email"`
	IsPublic bool   `json:"is_public"`
}

// ContactPatch is a partial update of the owner-editable contact fields.
// Only keys in constant.AllowedContactFields may appear in the JSON body;
// decoding fails with ErrDisallowedField on anything else, so owner_id,
// is_hidden, is_user_proxy and id can never travel through this path.
type ContactPatch struct {
	Name     *string `json:"name,omitempty"`
	Surname  *string `json:"surname,omitempty"`
	Company  *string `json:"company,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phones   *string `json:"phones,omitempty"`
	Email    *string `json:"email,omitempty"`
	IsPublic *bool   `json:"is_public,omitempty"`
}

func (p *ContactPatch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.SetCustomError(constant.ErrValidation)
	}
	for key := range raw {
		if _, ok := constant.AllowedContactFields[key]; !ok {
			return errors.SetCustomError(constant.ErrDisallowedField)
		}
	}

	type alias ContactPatch
	var out alias
	if err := json.Unmarshal(data, &out); err != nil {
		return errors.SetCustomError(constant.ErrValidation)
	}
	*p = ContactPatch(out)
	return nil
}

// Validate rejects a patch that would blank a required field. Name,
// surname and email may be changed but never cleared.
func (p *ContactPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.SetCustomError(constant.ErrValidation)
	}
	if p.Surname != nil && *p.Surname == "" {
		return errors.SetCustomError(constant.ErrValidation)
	}
	if p.Email != nil && *p.Email == "" {
		return errors.SetCustomError(constant.ErrValidation)
	}
	return nil
}

// IsEmpty reports whether the patch carries no updates at all.
func (p *ContactPatch) IsEmpty() bool {
	return p.Name == nil && p.Surname == nil && p.Company == nil &&
		p.Address == nil && p.Phones == nil && p.Email == nil && p.IsPublic == nil
}
