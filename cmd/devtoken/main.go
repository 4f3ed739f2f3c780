// Command devtoken mints a bearer token for local testing:
//
//	JWT_SECRET=... go run ./cmd/devtoken -sub <id> -name "Jane" -role fao
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"ebursary-backend/internal/adapter/middleware"
	"ebursary-backend/internal/config"
	"ebursary-backend/internal/domain/workflow"
	"ebursary-backend/pkg/id"
)

func main() {
	sub := flag.String("sub", "", "actor id (default: random)")
	name := flag.String("name", "Dev User", "display name")
	role := flag.String("role", "student", "student | aro | fao | fdo | superadmin")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}
	r := workflow.ParseRole(*role)
	if !r.Known() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}
	if *sub == "" {
		*sub = id.NewID32()
	}

	tok, err := middleware.IssueToken([]byte(cfg.JWTSecret), workflow.Actor{ID: *sub, Name: *name, Role: r}, *ttl, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
