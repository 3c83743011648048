// Command createsuperuser creates an admin account from the command line.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"socialmedia/internal/bootstrap"
	"socialmedia/internal/config"
	"socialmedia/internal/password"
	"socialmedia/internal/service"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errPasswordMismatch = errors.New("passwords do not match")

type options struct {
	email      string
	name       string
	noPassword bool
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Fatalf("parse flags: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		logger.Fatalf("init account tables: %v", err)
	}

	hasher, err := password.New(cfg.Auth.Hasher, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatalf("password hasher: %v", err)
	}

	users := service.NewUserService(store, hasher, nil, logger, nil)
	if err := run(ctx, users, opts, os.Stdout); err != nil {
		logger.Fatalf("create superuser: %v", err)
	}
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("createsuperuser", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.email, "email", "", "email address of the new superuser (required)")
	fs.StringVar(&opts.name, "name", "", "display name")
	fs.BoolVar(&opts.noPassword, "no-password", false, "store an unusable password instead of prompting")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.email == "" {
		return options{}, fmt.Errorf("--email is required")
	}
	return opts, nil
}

func run(ctx context.Context, users service.UserService, opts options, w io.Writer) error {
	var secret *string
	if !opts.noPassword {
		pw, err := promptPassword(w)
		if err != nil {
			return err
		}
		secret = &pw
	}

	user, err := users.CreateSuperuser(ctx, service.NewUser{
		Email:    opts.email,
		Name:     opts.name,
		Password: secret,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Superuser %s created (id %d).\n", user.Email, user.ID)
	return err
}

// promptPassword reads the password twice without echo.
func promptPassword(w io.Writer) (string, error) {
	first, err := readLine(w, "Password: ")
	if err != nil {
		return "", err
	}
	second, err := readLine(w, "Password (again): ")
	if err != nil {
		return "", err
	}
	if !bytes.Equal(first, second) {
		return "", errPasswordMismatch
	}
	return string(first), nil
}

func readLine(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
