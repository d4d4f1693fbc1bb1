package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"easybooking/internal/auth"
	"easybooking/internal/domain"
	mongostore "easybooking/internal/storage/mongo"
)

// opener returns the user store and a func that releases it.
type opener func(ctx context.Context, uri, db string) (domain.UserRepository, func(), error)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, openMongo); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, open opener) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	role := fs.String("role", domain.RoleAdmin, "Role stored with the user")
	uri := fs.String("mongo", envOr("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection string")
	dbName := fs.String("db", envOr("DB_NAME", "easybooking"), "Database name")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*username) == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> [-password <password>] [-role <role>] [-mongo <uri>] [-db <name>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user")
	}
	if strings.TrimSpace(*role) == "" {
		return fmt.Errorf("role cannot be empty")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, closeFn, err := open(ctx, *uri, *dbName)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeFn()

	// sessions are never touched here
	svc := auth.NewService(users, nil, 0)
	created, err := svc.SetPassword(ctx, strings.TrimSpace(*username), password, *role)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if created {
		fmt.Fprintf(stdout, "User %s created with role %s\n", *username, *role)
	} else {
		fmt.Fprintf(stdout, "Password for %s updated\n", *username)
	}
	return nil
}

func openMongo(ctx context.Context, uri, db string) (domain.UserRepository, func(), error) {
	c, err := mongostore.Connect(ctx, uri, db)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = c.Disconnect(context.Background()) }
	if err := c.Ping(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	if err := c.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return c.Users(), closeFn, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
