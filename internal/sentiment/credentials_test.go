package sentiment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accessKeys.csv")
	content := "\ufeffAccess key ID,Secret access key\nAKIAEXAMPLE,wJalrXUtnFEMI/K7MDENG\nAKIASECOND,other\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	creds, err := LoadCredentials(path)

	require.NoError(t, err)
	assert.Equal(t, Credentials{AccessKeyID: "AKIAEXAMPLE", SecretAccessKey: "wJalrXUtnFEMI/K7MDENG"}, creds)
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.csv"))

	assert.Error(t, err)
}

func TestParseCredentialsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"empty", "", "empty file"},
		{"missing column", "User name,Access key ID\nbob,AKIA\n", "Secret access key"},
		{"no rows", "Access key ID,Secret access key\n", "no credentials row"},
		{"blank key", "Access key ID,Secret access key\n,secret\n", "empty access key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCredentials(strings.NewReader(tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseCredentialsColumnOrder(t *testing.T) {
	creds, err := parseCredentials(strings.NewReader("Secret access key,User name,Access key ID\nsecret,bob,AKIA\n"))

	require.NoError(t, err)
	assert.Equal(t, "AKIA", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}
