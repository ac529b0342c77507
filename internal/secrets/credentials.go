package secrets

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"espritjobs-engine/internal/config"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "espritjobs"

// Account derives the keychain account name from the configured identity,
// so credentials for different portals or emails don't collide.
func Account(cfg config.Config) string {
	host := cfg.App.BaseURL
	if u, err := url.Parse(cfg.App.BaseURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	return fmt.Sprintf("espritjobs:%s@%s", cfg.Auth.Email, host)
}

// Credentials resolves the portal email and password: config/env for the
// email, keychain first then ESPRIT_PASSWORD for the password.
func Credentials(cfg config.Config) (email, password string, err error) {
	email = strings.TrimSpace(cfg.Auth.Email)
	if email == "" {
		email = strings.TrimSpace(os.Getenv("ESPRIT_EMAIL"))
	}
	if email == "" {
		return "", "", errors.New("no portal email: set auth.email in config or ESPRIT_EMAIL")
	}
	cfg.Auth.Email = email

	if pw, kerr := keyring.Get(KeyringService, Account(cfg)); kerr == nil && strings.TrimSpace(pw) != "" {
		return email, pw, nil
	}
	if pw := os.Getenv("ESPRIT_PASSWORD"); strings.TrimSpace(pw) != "" {
		return email, pw, nil
	}
	return "", "", errors.New("portal password not found (store it with `scraper secrets set` or set ESPRIT_PASSWORD)")
}

func SetPassword(cfg config.Config, password string) error {
	if strings.TrimSpace(cfg.Auth.Email) == "" {
		return errors.New("auth.email must be set before storing a password")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, Account(cfg), password)
}

func DeletePassword(cfg config.Config) error {
	return keyring.Delete(KeyringService, Account(cfg))
}
