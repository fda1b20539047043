package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	contactapp "contacts-directory/application/contact"
	userapp "contacts-directory/application/user"
	"contacts-directory/cmd/config"
	redisclient "contacts-directory/cmd/redis"
	_ "contacts-directory/docs"
	contactRepo "contacts-directory/repository/contact"
	redisRepo "contacts-directory/repository/redis"
	txRepo "contacts-directory/repository/tx"
	userRepo "contacts-directory/repository/user"
	"contacts-directory/thirdparty/rabbitmq"
	"contacts-directory/transport"
	"contacts-directory/utils/logger"
)

// @title CONTACTS DIRECTORY API
// @version 1.0
// @description Multi-tenant contact directory API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	ContactRepo := contactRepo.NewContactRepository(db)
	SessionRepo := redisRepo.NewRepository()

	// Directory events are optional; the server runs without a broker.
	var publisher contactapp.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer func() {
			_ = p.Close()
		}()
		publisher = p
	}

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, TxRepo, UserRepo, ContactRepo, SessionRepo)
	ContactApp := contactapp.NewContactApp(ContactRepo, publisher)

	// Make sure the administrator account exists before serving traffic
	if err := UserApp.EnsureAdminAccount(context.Background()); err != nil {
		logger.Fatal("err ensure admin account", zap.Error(err))
	}

	httpTransport := transport.NewTransport(UserApp, ContactApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
