package user

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"contacts-directory/cmd/config"
	"contacts-directory/constant"
	"contacts-directory/model"
	contactrepo "contacts-directory/repository/contact"
	redisrepo "contacts-directory/repository/redis"
	txrepo "contacts-directory/repository/tx"
	userrepo "contacts-directory/repository/user"
	"contacts-directory/utils/errors"
	"contacts-directory/utils/logger"
)

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Logout(ctx context.Context, tokenString string) error
	ResolvePrincipal(ctx context.Context, tokenString string) (*model.Principal, error)
	GetProfile(ctx context.Context, principal *model.Principal) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, principal *model.Principal, req *model.UpdateProfileRequest) (*model.UserProfile, error)
	EnsureAdminAccount(ctx context.Context) error
}

type UserAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	userRepo    userrepo.UserRepository
	contactRepo contactrepo.ContactRepository
	sessionRepo redisrepo.SessionRepository
}

func NewUserApp(config *config.Config, txRepo txrepo.TxRepository, userRepo userrepo.UserRepository, contactRepo contactrepo.ContactRepository, sessionRepo redisrepo.SessionRepository) UserApp {
	return &UserAppImpl{
		config:      config,
		txRepo:      txRepo,
		userRepo:    userRepo,
		contactRepo: contactRepo,
		sessionRepo: sessionRepo,
	}
}

// Register creates the user and its proxy contact as one transaction: a
// registration never leaves a user without its directory shadow.
func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrDuplicateEmail)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	userEntity, err = s.createUserWithProxy(ctx, userEntity)
	if err != nil {
		if userrepo.IsDuplicateEntry(err) {
			// Lost a race on the unique email index.
			return nil, errors.SetCustomError(constant.ErrDuplicateEmail)
		}
		logger.Error("[Register] err createUserWithProxy", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return s.issueSession(ctx, userEntity, "[Register]")
}

// createUserWithProxy inserts the user and its proxy contact atomically.
func (s *UserAppImpl) createUserWithProxy(ctx context.Context, userEntity *model.UserEntity) (*model.UserEntity, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	userEntity, err = s.userRepo.CreateTx(ctx, tx, userEntity)
	if err != nil {
		return nil, err
	}

	proxy := &model.ContactEntity{
		Name:        userEntity.Name,
		Surname:     userEntity.Surname,
		Email:       userEntity.Email,
		OwnerID:     userEntity.ID,
		IsUserProxy: true,
	}
	if _, err := s.contactRepo.CreateTx(ctx, tx, proxy); err != nil {
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		return nil, err
	}
	committed = true
	return userEntity, nil
}

// Login deliberately reports the same failure for an unknown email and a
// wrong password.
func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	userEntity, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if userEntity == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userEntity.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	return s.issueSession(ctx, userEntity, "[Login]")
}

func (s *UserAppImpl) issueSession(ctx context.Context, userEntity *model.UserEntity, caller string) (*model.AuthResponse, error) {
	token, jti, err := s.generateJWT(userEntity.ID)
	if err != nil {
		logger.Error(caller+" err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.sessionRepo.SetSession(ctx, jti, userEntity.ID, s.config.Auth.SessionExpTime); err != nil {
		logger.Error(caller+" err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.AuthResponse{
		Token: token,
		User:  profileOf(userEntity),
	}, nil
}

// Logout revokes the session behind the token. An already-invalid token is
// reported as unauthorized, same as the middleware would.
func (s *UserAppImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return errors.SetCustomError(constant.ErrUnauthorized)
	}
	if err := s.sessionRepo.DeleteSession(ctx, claims.ID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// ResolvePrincipal validates the token, checks the live session and loads
// the user. The admin flag is read here, once per request; everything
// downstream trusts the Principal.
func (s *UserAppImpl) ResolvePrincipal(ctx context.Context, tokenString string) (*model.Principal, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token")
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("token missing jti")
	}

	sessionUserID, err := s.sessionRepo.GetSession(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired session")
	}
	if sessionUserID != userID {
		return nil, fmt.Errorf("token does not match user session")
	}

	userEntity, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if userEntity == nil {
		return nil, fmt.Errorf("user no longer exists")
	}

	return userEntity.AsPrincipal(), nil
}

func (s *UserAppImpl) GetProfile(ctx context.Context, principal *model.Principal) (*model.UserProfile, error) {
	if principal == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorized)
	}

	userEntity, err := s.userRepo.Get(ctx, &model.UserFilter{ID: principal.ID})
	if err != nil {
		logger.Error("[GetProfile] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if userEntity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	profile := profileOf(userEntity)
	return &profile, nil
}

// UpdateProfile writes the account fields and keeps the proxy contact in
// sync inside one transaction.
func (s *UserAppImpl) UpdateProfile(ctx context.Context, principal *model.Principal, req *model.UpdateProfileRequest) (*model.UserProfile, error) {
	if principal == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorized)
	}

	userEntity, err := s.userRepo.Get(ctx, &model.UserFilter{ID: principal.ID})
	if err != nil {
		logger.Error("[UpdateProfile] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if userEntity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if req.Email != userEntity.Email {
		other, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
		if err != nil {
			logger.Error("[UpdateProfile] err userRepo.Get email", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if other != nil {
			return nil, errors.SetCustomError(constant.ErrDuplicateEmail)
		}
	}

	userEntity.Name = req.Name
	userEntity.Surname = req.Surname
	userEntity.Email = req.Email
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("[UpdateProfile] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		userEntity.PasswordHash = string(hashedPassword)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[UpdateProfile] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.userRepo.UpdateTx(ctx, tx, userEntity); err != nil {
		if userrepo.IsDuplicateEntry(err) {
			return nil, errors.SetCustomError(constant.ErrDuplicateEmail)
		}
		logger.Error("[UpdateProfile] err userRepo.UpdateTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.contactRepo.SyncProxyTx(ctx, tx, userEntity.ID, userEntity.Name, userEntity.Surname, userEntity.Email); err != nil {
		logger.Error("[UpdateProfile] err contactRepo.SyncProxyTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[UpdateProfile] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	profile := profileOf(userEntity)
	return &profile, nil
}

// EnsureAdminAccount guarantees the configured administrator exists. It is
// keyed by email, so running it on every startup is a no-op after the first.
func (s *UserAppImpl) EnsureAdminAccount(ctx context.Context) error {
	admin := s.config.Admin

	existing, err := s.userRepo.Get(ctx, &model.UserFilter{Email: admin.Email})
	if err != nil {
		logger.Error("[EnsureAdminAccount] err userRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		logger.Info("[EnsureAdminAccount] administrator already exists", zap.String("email", admin.Email))
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[EnsureAdminAccount] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	adminEntity := &model.UserEntity{
		Name:         admin.Name,
		Surname:      admin.Surname,
		Email:        admin.Email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      true,
	}

	if _, err := s.createUserWithProxy(ctx, adminEntity); err != nil {
		if userrepo.IsDuplicateEntry(err) {
			// Another instance created it first.
			return nil
		}
		logger.Error("[EnsureAdminAccount] err createUserWithProxy", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	logger.Info("[EnsureAdminAccount] administrator created", zap.String("email", admin.Email))
	return nil
}

func (s *UserAppImpl) parseClaims(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// generateJWT creates a JWT token for the user
func (s *UserAppImpl) generateJWT(userID uint64) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

func profileOf(userEntity *model.UserEntity) model.UserProfile {
	return model.UserProfile{
		ID:      userEntity.ID,
		Name:    userEntity.Name,
		Surname: userEntity.Surname,
		Email:   userEntity.Email,
		IsAdmin: userEntity.IsAdmin,
	}
}
