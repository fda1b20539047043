package user_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	appuser "contacts-directory/application/user"
	"contacts-directory/cmd/config"
	"contacts-directory/constant"
	contactmocks "contacts-directory/mocks/repository/contact"
	redismocks "contacts-directory/mocks/repository/redis"
	txmocks "contacts-directory/mocks/repository/tx"
	usermocks "contacts-directory/mocks/repository/user"
	"contacts-directory/model"
	cerr "contacts-directory/utils/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
		},
		Admin: config.AdminConfig{
			Email:    "admin@gmail.com",
			Password: "admin123",
			Name:     "Admin",
			Surname:  "Principal",
		},
	}
}

func TestUserApp_Register(t *testing.T) {
	type fields struct {
		config      *config.Config
		txRepo      *txmocks.TxRepository
		userRepo    *usermocks.UserRepository
		contactRepo *contactmocks.ContactRepository
		sessionRepo *redismocks.SessionRepository
	}
	type args struct {
		ctx context.Context
		req *model.RegisterRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     model.UserProfile
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: register creates user and proxy contact",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Juan",
					Surname:  "Perez",
					Email:    "juan@example.com",
					Password: "password123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "juan@example.com"}).
					Return(nil, nil).
					Once()

				f.txRepo.
					On("BeginTx", mock.Anything).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Name == "Juan" &&
							ent.Surname == "Perez" &&
							ent.Email == "juan@example.com" &&
							ent.PasswordHash != "" &&
							!ent.IsAdmin
					})).
					Return(&model.UserEntity{
						ID:      1,
						Name:    "Juan",
						Surname: "Perez",
						Email:   "juan@example.com",
					}, nil).
					Once()

				f.contactRepo.
					On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(ent *model.ContactEntity) bool {
						return ent.IsUserProxy &&
							ent.OwnerID == 1 &&
							ent.Name == "Juan" &&
							ent.Surname == "Perez" &&
							ent.Email == "juan@example.com" &&
							!ent.IsPublic
					})).
					Return(&model.ContactEntity{ID: 10, OwnerID: 1, IsUserProxy: true}, nil).
					Once()

				f.txRepo.
					On("CommitTx", mock.Anything).
					Return(nil).
					Once()

				f.sessionRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).
					Return(nil).
					Once()
			},
			want: model.UserProfile{
				ID:      1,
				Name:    "Juan",
				Surname: "Perez",
				Email:   "juan@example.com",
			},
			wantErr: false,
		},
		{
			name: "error: email already registered",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Juan",
					Surname:  "Perez",
					Email:    "existing@example.com",
					Password: "password123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "existing@example.com"}).
					Return(&model.UserEntity{ID: 1, Email: "existing@example.com"}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrDuplicateEmail,
		},
		{
			name: "error: proxy insert fails, transaction rolled back",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Juan",
					Surname:  "Perez",
					Email:    "juan@example.com",
					Password: "password123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "juan@example.com"}).
					Return(nil, nil).
					Once()

				f.txRepo.
					On("BeginTx", mock.Anything).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("CreateTx", mock.Anything, mock.Anything, mock.Anything).
					Return(&model.UserEntity{ID: 1, Name: "Juan", Surname: "Perez", Email: "juan@example.com"}, nil).
					Once()

				f.contactRepo.
					On("CreateTx", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("db error")).
					Once()

				f.txRepo.
					On("RollbackTx", mock.Anything).
					Return(nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appuser.NewUserApp(tt.fields.config, tt.fields.txRepo, tt.fields.userRepo, tt.fields.contactRepo, tt.fields.sessionRepo)

			got, err := app.Register(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Token == "" {
				t.Fatalf("Register() returned empty token")
			}
			if !reflect.DeepEqual(got.User, tt.want) {
				t.Fatalf("Register() user = %+v, want %+v", got.User, tt.want)
			}
		})
	}
}

func TestUserApp_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	type fields struct {
		config      *config.Config
		txRepo      *txmocks.TxRepository
		userRepo    *usermocks.UserRepository
		contactRepo *contactmocks.ContactRepository
		sessionRepo *redismocks.SessionRepository
	}
	type args struct {
		ctx context.Context
		req *model.LoginRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     model.UserProfile
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: valid credentials",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.LoginRequest{Email: "juan@example.com", Password: "correct-password"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "juan@example.com"}).
					Return(&model.UserEntity{
						ID:           1,
						Name:         "Juan",
						Surname:      "Perez",
						Email:        "juan@example.com",
						PasswordHash: string(hashed),
					}, nil).
					Once()

				f.sessionRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).
					Return(nil).
					Once()
			},
			want: model.UserProfile{
				ID:      1,
				Name:    "Juan",
				Surname: "Perez",
				Email:   "juan@example.com",
			},
			wantErr: false,
		},
		{
			name: "error: unknown email reports invalid credentials",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.LoginRequest{Email: "nobody@example.com", Password: "whatever"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "nobody@example.com"}).
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidCredentials,
		},
		{
			name: "error: wrong password reports the same invalid credentials",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.LoginRequest{Email: "juan@example.com", Password: "wrong-password"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "juan@example.com"}).
					Return(&model.UserEntity{
						ID:           1,
						Email:        "juan@example.com",
						PasswordHash: string(hashed),
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appuser.NewUserApp(tt.fields.config, tt.fields.txRepo, tt.fields.userRepo, tt.fields.contactRepo, tt.fields.sessionRepo)

			got, err := app.Login(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Token == "" {
				t.Fatalf("Login() returned empty token")
			}
			if !reflect.DeepEqual(got.User, tt.want) {
				t.Fatalf("Login() user = %+v, want %+v", got.User, tt.want)
			}
		})
	}
}

func TestUserApp_EnsureAdminAccount(t *testing.T) {
	type fields struct {
		config      *config.Config
		txRepo      *txmocks.TxRepository
		userRepo    *usermocks.UserRepository
		contactRepo *contactmocks.ContactRepository
		sessionRepo *redismocks.SessionRepository
	}
	tests := []struct {
		name     string
		fields   fields
		mockCall func(f fields)
		wantErr  bool
	}{
		{
			name: "success: creates the administrator and its proxy",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "admin@gmail.com"}).
					Return(nil, nil).
					Once()

				f.txRepo.
					On("BeginTx", mock.Anything).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Email == "admin@gmail.com" && ent.IsAdmin
					})).
					Return(&model.UserEntity{ID: 1, Email: "admin@gmail.com", IsAdmin: true}, nil).
					Once()

				f.contactRepo.
					On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(ent *model.ContactEntity) bool {
						return ent.IsUserProxy && ent.OwnerID == 1
					})).
					Return(&model.ContactEntity{ID: 10}, nil).
					Once()

				f.txRepo.
					On("CommitTx", mock.Anything).
					Return(nil).
					Once()
			},
			wantErr: false,
		},
		{
			name: "success: administrator already exists, nothing written",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "admin@gmail.com"}).
					Return(&model.UserEntity{ID: 1, Email: "admin@gmail.com", IsAdmin: true}, nil).
					Once()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appuser.NewUserApp(tt.fields.config, tt.fields.txRepo, tt.fields.userRepo, tt.fields.contactRepo, tt.fields.sessionRepo)

			if err := app.EnsureAdminAccount(context.Background()); (err != nil) != tt.wantErr {
				t.Fatalf("EnsureAdminAccount() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserApp_ResolvePrincipal(t *testing.T) {
	cfg := testConfig()
	jti := "test-session-id"

	makeToken := func(userID uint64, secret string) string {
		claims := jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        jti,
		}
		tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return tokenString
	}

	t.Run("success: admin flag resolved from the stored user", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		sessionRepo := redismocks.NewSessionRepository(t)

		sessionRepo.
			On("GetSession", mock.Anything, jti).
			Return(uint64(7), nil).
			Once()
		userRepo.
			On("Get", mock.Anything, &model.UserFilter{ID: 7}).
			Return(&model.UserEntity{ID: 7, Email: "admin@gmail.com", IsAdmin: true}, nil).
			Once()

		app := appuser.NewUserApp(cfg, txmocks.NewTxRepository(t), userRepo, contactmocks.NewContactRepository(t), sessionRepo)

		principal, err := app.ResolvePrincipal(context.Background(), makeToken(7, cfg.Auth.JWTSecret))
		if err != nil {
			t.Fatalf("ResolvePrincipal() error = %v", err)
		}
		if principal.ID != 7 || !principal.IsAdmin {
			t.Fatalf("ResolvePrincipal() = %+v, want ID 7 admin", principal)
		}
	})

	t.Run("error: token signed with another secret", func(t *testing.T) {
		app := appuser.NewUserApp(cfg, txmocks.NewTxRepository(t), usermocks.NewUserRepository(t), contactmocks.NewContactRepository(t), redismocks.NewSessionRepository(t))

		if _, err := app.ResolvePrincipal(context.Background(), makeToken(7, "other-secret")); err == nil {
			t.Fatalf("ResolvePrincipal() expected error for forged token")
		}
	})

	t.Run("error: session user does not match token subject", func(t *testing.T) {
		sessionRepo := redismocks.NewSessionRepository(t)
		sessionRepo.
			On("GetSession", mock.Anything, jti).
			Return(uint64(99), nil).
			Once()

		app := appuser.NewUserApp(cfg, txmocks.NewTxRepository(t), usermocks.NewUserRepository(t), contactmocks.NewContactRepository(t), sessionRepo)

		if _, err := app.ResolvePrincipal(context.Background(), makeToken(7, cfg.Auth.JWTSecret)); err == nil {
			t.Fatalf("ResolvePrincipal() expected error for mismatched session")
		}
	})
}

func TestUserApp_UpdateProfile(t *testing.T) {
	type fields struct {
		config      *config.Config
		txRepo      *txmocks.TxRepository
		userRepo    *usermocks.UserRepository
		contactRepo *contactmocks.ContactRepository
		sessionRepo *redismocks.SessionRepository
	}
	type args struct {
		principal *model.Principal
		req       *model.UpdateProfileRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.UserProfile
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: profile and proxy contact updated together",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			args: args{
				principal: &model.Principal{ID: 1},
				req: &model.UpdateProfileRequest{
					Name:    "Juana",
					Surname: "Perez",
					Email:   "juana@example.com",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 1}).
					Return(&model.UserEntity{
						ID:           1,
						Name:         "Juan",
						Surname:      "Perez",
						Email:        "juan@example.com",
						PasswordHash: "old-hash",
					}, nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "juana@example.com"}).
					Return(nil, nil).
					Once()

				f.txRepo.
					On("BeginTx", mock.Anything).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("UpdateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.ID == 1 &&
							ent.Name == "Juana" &&
							ent.Email == "juana@example.com" &&
							ent.PasswordHash == "old-hash"
					})).
					Return(nil).
					Once()

				f.contactRepo.
					On("SyncProxyTx", mock.Anything, mock.Anything, uint64(1), "Juana", "Perez", "juana@example.com").
					Return(nil).
					Once()

				f.txRepo.
					On("CommitTx", mock.Anything).
					Return(nil).
					Once()
			},
			want: &model.UserProfile{
				ID:      1,
				Name:    "Juana",
				Surname: "Perez",
				Email:   "juana@example.com",
			},
			wantErr: false,
		},
		{
			name: "error: new email already taken",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			args: args{
				principal: &model.Principal{ID: 1},
				req: &model.UpdateProfileRequest{
					Name:    "Juan",
					Surname: "Perez",
					Email:   "taken@example.com",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 1}).
					Return(&model.UserEntity{ID: 1, Email: "juan@example.com"}, nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "taken@example.com"}).
					Return(&model.UserEntity{ID: 2, Email: "taken@example.com"}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrDuplicateEmail,
		},
		{
			name: "error: anonymous caller",
			fields: fields{
				config:      testConfig(),
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
				sessionRepo: redismocks.NewSessionRepository(t),
			},
			args: args{
				principal: nil,
				req:       &model.UpdateProfileRequest{Name: "X", Surname: "Y", Email: "x@example.com"},
			},
			wantErr: true,
			errCode: constant.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appuser.NewUserApp(tt.fields.config, tt.fields.txRepo, tt.fields.userRepo, tt.fields.contactRepo, tt.fields.sessionRepo)

			got, err := app.UpdateProfile(context.Background(), tt.args.principal, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateProfile() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("UpdateProfile() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
