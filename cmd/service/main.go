package main

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/radek.prochazka/contact-book/internal/config"
	"gitlab.com/radek.prochazka/contact-book/internal/handler"
	"gitlab.com/radek.prochazka/contact-book/internal/logger"
	"gitlab.com/radek.prochazka/contact-book/internal/repository"
	"gitlab.com/radek.prochazka/contact-book/internal/service"
	"gitlab.com/radek.prochazka/contact-book/internal/token"
)

// Usage example on the command line:
// > PORT=8080 DBUSER=dirk DBPWD=bullo92 DBHOST=localhost GIN_MODE=release go run main.go
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	sqlDB, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		log.Fatal("could not open database", "error", err)
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	contactRepository, err := repository.NewContactRepository(db)
	if err != nil {
		log.Fatal("could not initialize contact repository", "error", err)
	}
	userRepository, err := repository.NewUserRepository(db)
	if err != nil {
		log.Fatal("could not initialize user repository", "error", err)
	}

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	contacts := service.NewContactService(contactRepository)
	auth := service.NewAuthService(userRepository, tokens)

	router := handler.New(contacts, auth, tokens, db, log).SetupHttpRouter(cfg.GinLogging)
	log.Info("starting contact book service", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
