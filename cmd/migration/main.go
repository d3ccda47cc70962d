package main

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"gitlab.com/radek.prochazka/contact-book/database"
	"gitlab.com/radek.prochazka/contact-book/internal/config"
)

// Usage example on the command line:
// > DBHOST=localhost DBUSER=dirk DBPWD=bullo92 go run main.go
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}
	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		panic(err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		panic(err)
	}
	fmt.Println("database schema is up to date")
}
