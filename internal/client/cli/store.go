package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/taskhub/internal/common"
)

var (
	errNotLoggedIn   = fmt.Errorf("%w: not logged in, run taskctl login", common.ErrorUnauthorized)
	errAccessExpired = fmt.Errorf("%w: access token expired, run taskctl login", common.ErrorUnauthorized)
)

func readSession(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", errNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", errNotLoggedIn
	}
	return value, nil
}

func writeSession(path, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.WriteFile(path, []byte(value+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func removeSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
