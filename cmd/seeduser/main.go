// seeduser crea el primer usuario administrador de un negocio.
//
// Uso: go run ./cmd/seeduser -email admin@tienda.com -password '...' [-negocio <id>] [-name "Dueño"] [-role admin]
//
// Si -negocio se omite se genera un id nuevo y se imprime.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
)

func main() {
	email := flag.String("email", "", "email del usuario")
	password := flag.String("password", os.Getenv("SEED_PASSWORD"), "password (mínimo 8); también SEED_PASSWORD")
	negocio := flag.String("negocio", "", "id del negocio")
	name := flag.String("name", "", "nombre visible")
	role := flag.String("role", entity.RoleAdmin, "admin | vendedor")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	negocioID := *negocio
	if negocioID == "" {
		negocioID = uuid.New().String()
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
	user, err := uc.RegisterUser(ctx, auth.NewUser{
		NegocioID: negocioID,
		Email:     *email,
		Password:  *password,
		Name:      *name,
		Role:      *role,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		fmt.Fprintf(os.Stderr, "Ya existe un usuario con email %s\n", *email)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Usuario %s (%s) creado en negocio %s\n", user.Email, user.Role, user.NegocioID)
}
