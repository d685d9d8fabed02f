// createuser aprovisiona un usuario del CRM: upsert por email (si ya existe se
// rota el password hash) y reemplazo completo de sus roles.
//
// Uso: go run ./cmd/createuser -email you@example.com -password Secret123 -roles Admin,Sales
// Requiere DATABASE_URL (o DB_HOST/DB_PORT/...) en el entorno. Idempotente.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-api/pkg/config"
)

func main() {
	email := flag.String("email", "", "email del usuario (obligatorio)")
	password := flag.String("password", "", "password en claro, se hashea con bcrypt (obligatorio)")
	roles := flag.String("roles", "Sales", "roles separados por coma (Admin,Sales,Service,Customer,StoreManager)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Uso: createuser -email you@example.com -password Secret123 -roles Admin,Sales")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var roleNames []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleNames = append(roleNames, r)
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	uc := auth.NewAuthUseCase(userRepo, auditRepo, postgres.NewTxRunner(pool), auth.JWTConfig{})

	user, err := uc.Provision(ctx, *email, *password, roleNames)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatchingRoles) {
			fmt.Fprintln(os.Stderr, "Ningún rol coincide con el catálogo (Admin, Sales, Service, Customer, StoreManager).")
		} else {
			fmt.Fprintf(os.Stderr, "Aprovisionar usuario: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Usuario listo: %s (%s)\n", user.Email, strings.Join(user.Roles, ", "))
}
