// Command token mints an admin access token for the catalog write endpoints.
//
//	go run ./cmd/token -subject librarian
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"catalog-backend/internal/config"
	"catalog-backend/pkg/jwt"
)

func main() {
	subject := flag.String("subject", "", "token subject (who the token is issued to)")
	role := flag.String("role", jwt.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to JWT_ACCESS_EXPIRY")
	flag.Parse()

	if err := run(*subject, *role, *ttl); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func run(subject, role string, ttl time.Duration) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = time.Duration(cfg.JWT.TokenExpiry) * time.Minute
	}

	token, err := jwt.NewManager(cfg.JWT.Secret, ttl).GenerateAccessToken(subject, role)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
