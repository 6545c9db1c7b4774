package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo_service/internal/handlers"
	"todo_service/internal/logger"
	"todo_service/internal/repository"
	"todo_service/internal/repository/db"
	"todo_service/internal/server"
	"todo_service/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml first so the log level is honored
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	// open DB
	store, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	tokens, err := tokenConfig()
	if err != nil {
		log.Fatalw("invalid token config", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(store)
	services := service.NewService(repos, tokens)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	// the signing secret should come from the environment, not the file
	_ = viper.BindEnv("token.secret", "TOKEN_SECRET")

	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("token.ttl_minutes", 60)

	return viper.ReadInConfig()
}

// tokenConfig builds the signing configuration; an empty secret is a startup
// error rather than a silently unsigned deployment.
func tokenConfig() (service.TokenConfig, error) {
	secret := viper.GetString("token.secret")
	if secret == "" {
		return service.TokenConfig{}, errors.New("token.secret is empty; set TOKEN_SECRET")
	}
	return service.TokenConfig{
		SigningKey: secret,
		TTL:        time.Duration(viper.GetInt("token.ttl_minutes")) * time.Minute,
	}, nil
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "todo.db")
		dbPath = "todo.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
