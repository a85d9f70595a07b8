package main

import (
	"flag"
	"fmt"
	"os"
	"pwreset/internal/cli"
	"pwreset/internal/config"

	"pwreset/internal/core/domain/user"
	passwordhasher "pwreset/internal/implementations/password_hasher"
)

// Prints a bcrypt hash for manual inserts into the user table.
func main() {
	flag.Parse()

	cfg, err := config.LoadHasher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	hasher, err := passwordhasher.NewProductionBcrypt(cfg.Secret, cfg.BcryptHasherCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	password, err := cli.Password(os.Stdin, os.Stderr, "Password")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	hash, err := hasher.HashPassword(user.RawPassword(password))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
