package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"pwreset/internal/app/deps"
	"pwreset/internal/app/services"
	"pwreset/internal/cli"

	c "pwreset/internal/core/domain/common"
	"pwreset/internal/core/domain/user"
	createuser "pwreset/internal/core/services/create_user"
)

func main() {
	email := flag.String("email", "", "email of the new user")
	password := flag.String("password", "", "password of the new user, prompted when empty")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "error: -email is required")
		os.Exit(2)
	}
	if *password == "" {
		p, err := cli.Password(os.Stdin, os.Stderr, "Password")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		*password = p
	}

	deps, shutdownDeps := deps.InitDeps()
	defer shutdownDeps()
	s := services.InitServices(deps)

	result, err := s.CreateUser.Run(context.Background(), createuser.Input{
		Email:    c.NewEmail(*email),
		Password: user.RawPassword(*password),
	})
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		fmt.Fprintf(os.Stderr, "error: user %s already exists\n", *email)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(result.User.ID)
}
