package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"

const tokenFileName = ".guardsys_token"

// APIURL returns the base URL for the guardsys API. Override with the
// GUARDSYS_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("GUARDSYS_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// SaveToken stores the JWT for subsequent CLI commands.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// ReadToken returns the stored JWT.
func ReadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RemoveToken deletes the stored JWT.
func RemoveToken() error {
	return os.Remove(tokenPath())
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
