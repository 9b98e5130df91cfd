// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads the Firestore service account credentials.
//
// Values come from the environment (PROJECT_ID, PRIVATE_KEY, CLIENT_EMAIL),
// which may be populated from a .env file. A directory of plain-text files
// fills in anything the environment leaves empty: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: project-id, private-key, client-email.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/subosito/gotenv"

	"github.com/pdiddy/tpadmin/pkg/types"
)

// Key file names inside the secrets directory.
const (
	KeyProjectID   = "project-id"
	KeyPrivateKey  = "private-key"
	KeyClientEmail = "client-email"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotEnv adds the variables in envFile to the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(envFile string) error {
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := gotenv.Load(envFile); err != nil {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}
	return nil
}

// LoadCredentials reads the credential triple from the environment and
// falls back to the files in fallback for empty fields. Escaped "\n"
// sequences in the private key become real newlines.
func LoadCredentials(fallback map[string]string) (types.Credentials, error) {
	var creds types.Credentials
	if err := cleanenv.ReadEnv(&creds); err != nil {
		return types.Credentials{}, fmt.Errorf("reading credentials from environment: %w", err)
	}

	if creds.ProjectID == "" {
		creds.ProjectID = fallback[KeyProjectID]
	}
	if creds.PrivateKey == "" {
		creds.PrivateKey = fallback[KeyPrivateKey]
	}
	if creds.ClientEmail == "" {
		creds.ClientEmail = fallback[KeyClientEmail]
	}

	creds.PrivateKey = strings.ReplaceAll(creds.PrivateKey, `\n`, "\n")
	return creds, nil
}
