package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"govidly/internal/pkg/database"
	"govidly/internal/pkg/logger"
	migrations "govidly/sql"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found or failed to read. Loading configs from system environment only: %v", err)
	}

	var migrationsDir string
	var embedded bool
	flag.StringVar(&migrationsDir, "dir", ".", "directory with migration files (relative to the embedded set unless -embedded=false)")
	flag.BoolVar(&embedded, "embedded", true, "use the migrations compiled into the binary")
	flag.Parse()

	// Só o DATABASE_URL é necessário aqui; as demais configs da API não se aplicam.
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatalf("goose: DATABASE_URL must be set")
	}

	db, err := database.NewPostgresDB(dsn, logger.NewLogger(os.Getenv("LOG_LEVEL")))
	if err != nil {
		log.Fatalf("goose: failed to connect to DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: failed to close DB: %v\n", err)
		}
	}()

	if embedded {
		goose.SetBaseFS(migrations.FS)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success\n", command)
}
