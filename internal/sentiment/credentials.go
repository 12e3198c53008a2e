package sentiment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	accessKeyColumn = "Access key ID"
	secretKeyColumn = "Secret access key"
)

// Credentials is an AWS access key pair as exported by the IAM console.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// LoadCredentials reads the first key pair from an IAM access key CSV.
func LoadCredentials(path string) (Credentials, error) {
	file, err := os.Open(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to open credentials file: %w", err)
	}
	defer file.Close()

	creds, err := parseCredentials(file)
	if err != nil {
		return Credentials{}, fmt.Errorf("invalid credentials file %s: %w", path, err)
	}
	return creds, nil
}

func parseCredentials(r io.Reader) (Credentials, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Credentials{}, errors.New("empty file")
	}
	if err != nil {
		return Credentials{}, err
	}

	keyIdx, secretIdx := -1, -1
	for i, name := range header {
		// IAM exports start with a byte order mark
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case accessKeyColumn:
			keyIdx = i
		case secretKeyColumn:
			secretIdx = i
		}
	}
	if keyIdx < 0 || secretIdx < 0 {
		return Credentials{}, fmt.Errorf("missing %q or %q column", accessKeyColumn, secretKeyColumn)
	}

	record, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Credentials{}, errors.New("no credentials row")
	}
	if err != nil {
		return Credentials{}, err
	}
	if len(record) <= keyIdx || len(record) <= secretIdx {
		return Credentials{}, errors.New("short credentials row")
	}

	creds := Credentials{
		AccessKeyID:     strings.TrimSpace(record[keyIdx]),
		SecretAccessKey: strings.TrimSpace(record[secretIdx]),
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return Credentials{}, errors.New("empty access key")
	}
	return creds, nil
}
