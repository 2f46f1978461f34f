// Comando promote concede ou revoga o papel de administrador de um usuário.
// A API nunca concede esse papel; ele só muda por aqui.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"govidly/internal/pkg/database"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/validation"
	"govidly/internal/repository/userrepo"
	"govidly/internal/service/userservice"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	var email string
	var revoke bool
	flag.StringVar(&email, "email", "", "email do usuário")
	flag.BoolVar(&revoke, "revoke", false, "remove o papel de administrador em vez de concedê-lo")
	flag.Parse()

	if email == "" {
		flag.Usage()
		os.Exit(2)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("❌ DATABASE_URL deve ser definida.")
	}

	appLog := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	db, err := database.NewPostgresDB(dsn, appLog)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	// Este comando não emite tokens.
	svc := userservice.NewService(userrepo.NewUserRepository(db, 5*time.Second, appLog), nil, validation.New(), appLog)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := svc.SetAdmin(ctx, email, !revoke)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("usuário %s (%s): isAdmin=%t\n", user.Email, user.ID, user.IsAdmin)
}
