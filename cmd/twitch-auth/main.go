package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"twitch-chat-client/auth"
	"twitch-chat-client/config"
	"twitch-chat-client/tokens"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "twitch-auth: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("twitch-auth", pflag.ContinueOnError)
	remove := flagSet.Bool("clear", false, "remove the stored token instead of saving one")
	flagSet.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: twitch-auth user <access-token>")
		fmt.Fprintln(os.Stderr, "       twitch-auth user --clear")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 || rest[0] != "user" {
		flagSet.Usage()
		return errors.New("expected command: user")
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	manager := tokens.NewManager(tokens.FileTokenStore{Path: cfg.Twitch.TokenFile})

	if *remove {
		if err := manager.ClearUserToken(); err != nil {
			return err
		}
		fmt.Println("ok, token removed")
		return nil
	}

	if len(rest) != 2 {
		flagSet.Usage()
		return errors.New("expected access token")
	}
	raw := strings.TrimPrefix(strings.TrimSpace(rest[1]), "oauth:")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	token, err := auth.NewValidator(cfg.Twitch.OAuthURL, nil).Validate(ctx, raw)
	if err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	if err := manager.SaveUserToken(raw); err != nil {
		return fmt.Errorf("save user token: %w", err)
	}

	fmt.Printf("ok, user %s (%s)", token.Login, token.UserID)
	if !token.ExpiresAt.IsZero() {
		fmt.Printf(", expires at %s", token.ExpiresAt.Format(time.RFC3339))
	}
	fmt.Println()
	return nil
}
