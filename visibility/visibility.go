// Package visibility is the pure decision engine for the contact directory.
// It owns every policy question: which contacts a principal may list through
// the public/mine/all views, which mutations a principal may perform on a
// given contact, and which fields a patch may touch. It performs no I/O; the
// stores are dumb collections that apply the filters produced here.
package visibility

import (
	"contacts-directory/constant"
	"contacts-directory/model"
	"contacts-directory/utils/errors"
)

// FilterForView resolves a named view into a contact filter for the given
// principal. A nil principal is an anonymous caller.
//
//   - public: is_public AND NOT is_hidden AND NOT is_user_proxy, anyone.
//   - mine:   owner = principal AND NOT is_user_proxy, authenticated only.
//   - all:    NOT is_user_proxy, administrators only.
func FilterForView(view constant.View, principal *model.Principal) (*model.ContactFilter, error) {
	noProxy := false

	switch view {
	case constant.ViewPublic:
		public := true
		hidden := false
		return &model.ContactFilter{
			IsPublic:    &public,
			IsHidden:    &hidden,
			IsUserProxy: &noProxy,
		}, nil

	case constant.ViewMine:
		if principal == nil {
			return nil, errors.SetCustomError(constant.ErrUnauthorized)
		}
		return &model.ContactFilter{
			OwnerID:     principal.ID,
			IsUserProxy: &noProxy,
		}, nil

	case constant.ViewAll:
		if principal == nil {
			return nil, errors.SetCustomError(constant.ErrUnauthorized)
		}
		if !principal.IsAdmin {
			return nil, errors.SetCustomError(constant.ErrUnauthorized)
		}
		return &model.ContactFilter{
			IsUserProxy: &noProxy,
		}, nil

	default:
		return nil, errors.SetCustomError(constant.ErrInvalidAction)
	}
}

// AuthorizeMutation decides whether a principal may apply an action to a
// contact. It returns nil on allow and a typed denial otherwise. No write
// happens anywhere before this check passes.
func AuthorizeMutation(principal *model.Principal, contact *model.ContactEntity, action constant.Action) error {
	if principal == nil {
		return errors.SetCustomError(constant.ErrUnauthorized)
	}

	switch action {
	case constant.ActionEditFields:
		if contact.OwnerID != principal.ID {
			return errors.SetCustomError(constant.ErrNotOwner)
		}
		return nil

	case constant.ActionDelete, constant.ActionTogglePublic:
		if contact.OwnerID != principal.ID {
			return errors.SetCustomError(constant.ErrNotOwner)
		}
		if contact.IsUserProxy {
			return errors.SetCustomError(constant.ErrProxyProtected)
		}
		return nil

	case constant.ActionToggleHidden:
		if !principal.IsAdmin {
			return errors.SetCustomError(constant.ErrNotAdmin)
		}
		// An administrator may only hide/show contacts that are currently
		// public; a private contact keeps whatever hidden flag it has.
		if !contact.IsPublic {
			return errors.SetCustomError(constant.ErrNotPublic)
		}
		return nil

	default:
		return errors.SetCustomError(constant.ErrInvalidAction)
	}
}

// ApplyFieldUpdate returns a copy of the contact with the patch applied.
// The patch type itself enforces the field whitelist at decode time, so
// everything reaching this point is owner-editable. Ownership, hidden and
// proxy flags are never touched here.
func ApplyFieldUpdate(contact *model.ContactEntity, patch *model.ContactPatch) *model.ContactEntity {
	out := *contact
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Surname != nil {
		out.Surname = *patch.Surname
	}
	if patch.Company != nil {
		out.Company = *patch.Company
	}
	if patch.Address != nil {
		out.Address = *patch.Address
	}
	if patch.Phones != nil {
		out.Phones = *patch.Phones
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	if patch.IsPublic != nil {
		out.IsPublic = *patch.IsPublic
	}
	return &out
}
