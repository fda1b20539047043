package contact

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"contacts-directory/constant"
	"contacts-directory/model"
	contactrepo "contacts-directory/repository/contact"
	"contacts-directory/thirdparty/rabbitmq"
	"contacts-directory/utils/errors"
	"contacts-directory/utils/logger"
	"contacts-directory/visibility"
)

type ContactApp interface {
	ListPublic(ctx context.Context) ([]model.ContactEntity, error)
	ListMine(ctx context.Context, principal *model.Principal) ([]model.ContactEntity, error)
	ListAll(ctx context.Context, principal *model.Principal) ([]model.ContactEntity, error)
	Create(ctx context.Context, principal *model.Principal, req *model.CreateContactRequest) (*model.ContactEntity, error)
	Update(ctx context.Context, principal *model.Principal, contactID uint64, patch *model.ContactPatch) (*model.ContactEntity, error)
	Delete(ctx context.Context, principal *model.Principal, contactID uint64) error
	TogglePublic(ctx context.Context, principal *model.Principal, contactID uint64) (*model.ContactEntity, error)
	ToggleHidden(ctx context.Context, principal *model.Principal, contactID uint64) (*model.ContactEntity, error)
}

// EventPublisher pushes directory events to the broker. Optional; a nil
// publisher disables events without touching the contact flow.
type EventPublisher interface {
	PublishContactEvent(msg rabbitmq.ContactEventMessage) error
}

type contactAppImpl struct {
	contactRepo contactrepo.ContactRepository
	publisher   EventPublisher
}

func NewContactApp(contactRepo contactrepo.ContactRepository, publisher EventPublisher) ContactApp {
	return &contactAppImpl{contactRepo: contactRepo, publisher: publisher}
}

func (s *contactAppImpl) ListPublic(ctx context.Context) ([]model.ContactEntity, error) {
	return s.list(ctx, constant.ViewPublic, nil)
}

func (s *contactAppImpl) ListMine(ctx context.Context, principal *model.Principal) ([]model.ContactEntity, error) {
	return s.list(ctx, constant.ViewMine, principal)
}

func (s *contactAppImpl) ListAll(ctx context.Context, principal *model.Principal) ([]model.ContactEntity, error) {
	return s.list(ctx, constant.ViewAll, principal)
}

func (s *contactAppImpl) list(ctx context.Context, view constant.View, principal *model.Principal) ([]model.ContactEntity, error) {
	filter, err := visibility.FilterForView(view, principal)
	if err != nil {
		return nil, err
	}

	contacts, err := s.contactRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListContacts] err contactRepo.List", zap.String("view", string(view)), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return contacts, nil
}

func (s *contactAppImpl) Create(ctx context.Context, principal *model.Principal, req *model.CreateContactRequest) (*model.ContactEntity, error) {
	if principal == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorized)
	}

	entity := &model.ContactEntity{
		Name:     req.Name,
		Surname:  req.Surname,
		Company:  req.Company,
		Address:  req.Address,
		Phones:   req.Phones,
		Email:    req.Email,
		OwnerID:  principal.ID,
		IsPublic: req.IsPublic,
	}

	entity, err := s.contactRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[CreateContact] err contactRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if entity.IsPublic {
		s.publishEvent(entity, "published")
	}
	return entity, nil
}

func (s *contactAppImpl) Update(ctx context.Context, principal *model.Principal, contactID uint64, patch *model.ContactPatch) (*model.ContactEntity, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	entity, err := s.authorize(ctx, principal, contactID, constant.ActionEditFields)
	if err != nil {
		return nil, err
	}

	// The whitelist lets an owner set is_public through a patch, but a
	// proxy contact must never be publishable through any path.
	if entity.IsUserProxy && patch.IsPublic != nil {
		return nil, errors.SetCustomError(constant.ErrProxyProtected)
	}

	if patch.IsEmpty() {
		return entity, nil
	}

	updated := visibility.ApplyFieldUpdate(entity, patch)
	if err := s.contactRepo.UpdateFields(ctx, contactID, patch); err != nil {
		logger.Error("[UpdateContact] err contactRepo.UpdateFields", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if entity.IsPublic != updated.IsPublic {
		if updated.IsPublic {
			s.publishEvent(updated, "published")
		} else {
			s.publishEvent(updated, "unpublished")
		}
	}
	return updated, nil
}

func (s *contactAppImpl) Delete(ctx context.Context, principal *model.Principal, contactID uint64) error {
	entity, err := s.authorize(ctx, principal, contactID, constant.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.contactRepo.Delete(ctx, entity.ID); err != nil {
		logger.Error("[DeleteContact] err contactRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *contactAppImpl) TogglePublic(ctx context.Context, principal *model.Principal, contactID uint64) (*model.ContactEntity, error) {
	entity, err := s.authorize(ctx, principal, contactID, constant.ActionTogglePublic)
	if err != nil {
		return nil, err
	}

	// Only is_public flips; a dormant hidden flag survives the round trip
	// and becomes effective again on re-publish.
	entity.IsPublic = !entity.IsPublic
	if err := s.contactRepo.SetPublic(ctx, entity.ID, entity.IsPublic); err != nil {
		logger.Error("[TogglePublic] err contactRepo.SetPublic", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if entity.IsPublic {
		s.publishEvent(entity, "published")
	} else {
		s.publishEvent(entity, "unpublished")
	}
	return entity, nil
}

func (s *contactAppImpl) ToggleHidden(ctx context.Context, principal *model.Principal, contactID uint64) (*model.ContactEntity, error) {
	entity, err := s.authorize(ctx, principal, contactID, constant.ActionToggleHidden)
	if err != nil {
		return nil, err
	}

	entity.IsHidden = !entity.IsHidden
	if err := s.contactRepo.SetHidden(ctx, entity.ID, entity.IsHidden); err != nil {
		logger.Error("[ToggleHidden] err contactRepo.SetHidden", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if entity.IsHidden {
		s.publishEvent(entity, "hidden")
	} else {
		s.publishEvent(entity, "shown")
	}
	return entity, nil
}

// authorize loads the contact and runs the mutation through the visibility
// engine. Ownership denials are reported as not-found so a caller probing
// foreign ids cannot tell a protected contact from a missing one.
func (s *contactAppImpl) authorize(ctx context.Context, principal *model.Principal, contactID uint64, action constant.Action) (*model.ContactEntity, error) {
	entity, err := s.contactRepo.Get(ctx, &model.ContactFilter{ID: contactID})
	if err != nil {
		logger.Error("[AuthorizeContact] err contactRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := visibility.AuthorizeMutation(principal, entity, action); err != nil {
		var ce errors.CustomError
		if stderrors.As(err, &ce) && ce.Type() == constant.ErrNotOwner {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
		return nil, err
	}
	return entity, nil
}

func (s *contactAppImpl) publishEvent(entity *model.ContactEntity, event string) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.ContactEventMessage{
		ContactID:  entity.ID,
		OwnerID:    entity.OwnerID,
		Event:      event,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishContactEvent(msg); err != nil {
		logger.Error("[PublishContactEvent] err publisher", zap.String("event", event), zap.String("error", err.Error()))
	}
}
