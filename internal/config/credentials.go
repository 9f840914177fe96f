package config

import (
	"fmt"
	"os"
	"strings"
)

// Credentials carry the API key and organization ID for one run. They are
// loaded once at startup and never mutated afterwards.
type Credentials struct {
	APIKey         string
	OrganizationID string
}

// ConfigurationError reports a credential file that is missing, unreadable,
// or empty.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Path, e.Reason)
}

// LoadCredentials reads the API key and organization ID from their files.
// There is no retry; a bad file fails the run immediately.
func LoadCredentials(tokenPath, orgPath string) (Credentials, error) {
	apiKey, err := readCredentialFile(tokenPath)
	if err != nil {
		return Credentials{}, err
	}
	orgID, err := readCredentialFile(orgPath)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{APIKey: apiKey, OrganizationID: orgID}, nil
}

var newlineStripper = strings.NewReplacer("\n", "", "\r", "")

func readCredentialFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &ConfigurationError{Path: path, Reason: "file not found"}
		}
		return "", &ConfigurationError{Path: path, Reason: err.Error()}
	}
	content := newlineStripper.Replace(strings.TrimSpace(string(data)))
	if content == "" {
		return "", &ConfigurationError{Path: path, Reason: "file is empty"}
	}
	return content, nil
}
