package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	contactapp "contacts-directory/application/contact"
	userapp "contacts-directory/application/user"
	"contacts-directory/constant"
	"contacts-directory/model"
	utilsContext "contacts-directory/utils/context"
	"contacts-directory/utils/errors"
	validatorx "contacts-directory/utils/validator"
)

type RestHandler struct {
	UserApp    userapp.UserApp
	ContactApp contactapp.ContactApp
}

func NewTransport(UserApp userapp.UserApp, ContactApp contactapp.ContactApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		UserApp:    UserApp,
		ContactApp: ContactApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// auth routes
	mux.HandleFunc("/auth/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/auth/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/auth/logout", rh.Logout).Methods(http.MethodPost)
	mux.HandleFunc("/auth/me", rh.Me).Methods(http.MethodGet)
	mux.HandleFunc("/auth/update-profile", rh.UpdateProfile).Methods(http.MethodPut)

	// contact routes
	mux.HandleFunc("/contacts/public", rh.ListPublicContacts).Methods(http.MethodGet)
	mux.HandleFunc("/contacts/mine", rh.ListMineContacts).Methods(http.MethodGet)
	mux.HandleFunc("/contacts/all", rh.ListAllContacts).Methods(http.MethodGet)
	mux.HandleFunc("/contacts", rh.CreateContact).Methods(http.MethodPost)
	mux.HandleFunc("/contacts/{id}", rh.UpdateContact).Methods(http.MethodPut)
	mux.HandleFunc("/contacts/{id}", rh.DeleteContact).Methods(http.MethodDelete)
	mux.HandleFunc("/contacts/{id}/public", rh.TogglePublicContact).Methods(http.MethodPut)
	mux.HandleFunc("/contacts/{id}/hidden", rh.ToggleHiddenContact).Methods(http.MethodPut)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(UserApp))

	return mux
}

// Register handler
// @Summary Register user
// @Description Register a new account and its directory contact
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} transport.BaseResponse
// @Router /auth/register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrValidation))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrValidation))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email and password and receive a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} transport.BaseResponse
// @Router /auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrValidation))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrValidation))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Logout handler
// @Summary Logout user
// @Description Invalidate the current session token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} transport.BaseResponse
// @Failure 401 {object} transport.BaseResponse
// @Router /auth/logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := bearerToken(r)
	if token == "" {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorized))
		return
	}

	if err := s.UserApp.Logout(ctx, token); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// Me handler
// @Summary Current account
// @Description Return the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserProfile
// @Failure 401 {object} transport.BaseResponse
// @Router /auth/me [get]
func (s *RestHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.UserApp.GetProfile(ctx, utilsContext.GetPrincipal(ctx))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateProfile handler
// @Summary Update profile
// @Description Update the account profile; the user's directory contact follows
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} model.UserProfile
// @Failure 400 {object} transport.BaseResponse
// @Router /auth/update-profile [put]
func (s *RestHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrValidation))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrValidation))
		return
	}

	res, err := s.UserApp.UpdateProfile(ctx, utilsContext.GetPrincipal(ctx), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListPublicContacts handler
// @Summary Public directory
// @Description List public, non-hidden contacts. No authentication required.
// @Tags Contacts
// @Produce json
// @Success 200 {array} model.ContactEntity
// @Router /contacts/public [get]
func (s *RestHandler) ListPublicContacts(w http.ResponseWriter, r *http.Request) {
	res, err := s.ContactApp.ListPublic(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListMineContacts handler
// @Summary Own contacts
// @Description List every contact owned by the caller, public or not
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ContactEntity
// @Failure 401 {object} transport.BaseResponse
// @Router /contacts/mine [get]
func (s *RestHandler) ListMineContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.ContactApp.ListMine(ctx, utilsContext.GetPrincipal(ctx))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListAllContacts handler
// @Summary Full directory
// @Description List every contact regardless of owner. Administrators only.
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ContactEntity
// @Failure 401 {object} transport.BaseResponse
// @Router /contacts/all [get]
func (s *RestHandler) ListAllContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.ContactApp.ListAll(ctx, utilsContext.GetPrincipal(ctx))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateContact handler
// @Summary Create contact
// @Description Add a contact owned by the caller
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateContactRequest true "Create Contact Request"
// @Success 200 {object} model.ContactEntity
// @Failure 400 {object} transport.BaseResponse
// @Router /contacts [post]
func (s *RestHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrValidation))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrValidation))
		return
	}

	res, err := s.ContactApp.Create(ctx, utilsContext.GetPrincipal(ctx), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateContact handler
// @Summary Update contact fields
// @Description Patch the editable fields of an owned contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param request body model.ContactPatch true "Contact Patch"
// @Success 200 {object} model.ContactEntity
// @Failure 400 {object} transport.BaseResponse
// @Failure 404 {object} transport.BaseResponse
// @Router /contacts/{id} [put]
func (s *RestHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contactID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.ContactPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		// the patch decoder emits typed errors; anything else (empty
		// body, syntax error) is a plain bad request
		var ce errors.CustomError
		if !stderrors.As(err, &ce) {
			err = errors.SetCustomError(constant.ErrValidation)
		}
		writeError(w, err)
		return
	}

	res, err := s.ContactApp.Update(ctx, utilsContext.GetPrincipal(ctx), contactID, &patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteContact handler
// @Summary Delete contact
// @Description Delete an owned contact. The user's own directory entry cannot be deleted.
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} transport.BaseResponse
// @Failure 404 {object} transport.BaseResponse
// @Router /contacts/{id} [delete]
func (s *RestHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contactID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.ContactApp.Delete(ctx, utilsContext.GetPrincipal(ctx), contactID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// TogglePublicContact handler
// @Summary Toggle public flag
// @Description Flip the public flag of an owned contact
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} model.ContactEntity
// @Failure 404 {object} transport.BaseResponse
// @Router /contacts/{id}/public [put]
func (s *RestHandler) TogglePublicContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contactID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ContactApp.TogglePublic(ctx, utilsContext.GetPrincipal(ctx), contactID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ToggleHiddenContact handler
// @Summary Toggle hidden flag
// @Description Flip the hidden flag of a public contact. Administrators only.
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} model.ContactEntity
// @Failure 403 {object} transport.BaseResponse
// @Router /contacts/{id}/hidden [put]
func (s *RestHandler) ToggleHiddenContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contactID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ContactApp.ToggleHidden(ctx, utilsContext.GetPrincipal(ctx), contactID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func pathID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, errors.SetCustomError(constant.ErrValidation)
	}
	return id, nil
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
