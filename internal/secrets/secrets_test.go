// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tpadmin/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "project-id", "  typing-child  \n")
				writeFile(t, dir, "private-key", "pk_xyz789")
				writeFile(t, dir, "client-email", "admin@example.com\n")
				return dir
			},
			want: map[string]string{
				"project-id":   "typing-child",
				"private-key":  "pk_xyz789",
				"client-email": "admin@example.com",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "client-email", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"client-email": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "project-id", "pk_real")
				return dir
			},
			want: map[string]string{
				"project-id": "pk_real",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "client-email", "ak_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"client-email": "ak_123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without read permission")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "PROJECT_ID=from-dotenv\nCLIENT_EMAIL=dotenv@example.com\n")

	t.Setenv("PROJECT_ID", "")
	os.Unsetenv("PROJECT_ID")
	t.Setenv("CLIENT_EMAIL", "already-set@example.com")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")))
	assert.Equal(t, "from-dotenv", os.Getenv("PROJECT_ID"))
	assert.Equal(t, "already-set@example.com", os.Getenv("CLIENT_EMAIL"), "existing variables win")

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
	assert.NoError(t, LoadDotEnv(""))
}

func TestLoadCredentials(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		fallback map[string]string
		want     types.Credentials
	}{
		{
			name: "environment only",
			env: map[string]string{
				"PROJECT_ID":   "typing-child",
				"PRIVATE_KEY":  `-----BEGIN-----\nabc\n-----END-----`,
				"CLIENT_EMAIL": "admin@example.com",
			},
			want: types.Credentials{
				ProjectID:   "typing-child",
				PrivateKey:  "-----BEGIN-----\nabc\n-----END-----",
				ClientEmail: "admin@example.com",
			},
		},
		{
			name: "secret files fill gaps",
			env:  map[string]string{"PROJECT_ID": "from-env"},
			fallback: map[string]string{
				KeyProjectID:   "from-file",
				KeyPrivateKey:  "file-key",
				KeyClientEmail: "file@example.com",
			},
			want: types.Credentials{
				ProjectID:   "from-env",
				PrivateKey:  "file-key",
				ClientEmail: "file@example.com",
			},
		},
		{
			name: "nothing configured",
			want: types.Credentials{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"PROJECT_ID", "PRIVATE_KEY", "CLIENT_EMAIL"} {
				t.Setenv(k, tt.env[k])
			}
			got, err := LoadCredentials(tt.fallback)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.ProjectID != "" && tt.want.PrivateKey != "" && tt.want.ClientEmail != "", got.IsComplete())
		})
	}
}
