package publisher

import (
    "errors"
    "fmt"
    "os"

    "golang.org/x/oauth2/google"
)

var (
    ErrCredentialsMissing   = errors.New("credentials file not found")
    ErrCredentialsMalformed = errors.New("credentials file is not a service account key")
)

// Credentials is a service account key loaded from disk.
type Credentials struct {
    Path   string
    JSON   []byte
    Email  string
    Scopes []string
}

func LoadCredentials(path string, scopes ...string) (Credentials, error) {
    if _, err := os.Stat(path); err != nil {
        if errors.Is(err, os.ErrNotExist) {
            return Credentials{}, fmt.Errorf("%w at %s", ErrCredentialsMissing, path)
        }
        return Credentials{}, fmt.Errorf("service account json: %w", err)
    }
    data, err := os.ReadFile(path)
    if err != nil {
        return Credentials{}, fmt.Errorf("service account json: %w", err)
    }
    jwt, err := google.JWTConfigFromJSON(data, scopes...)
    if err != nil {
        return Credentials{}, fmt.Errorf("%w: %s: %v", ErrCredentialsMalformed, path, err)
    }
    if jwt.Email == "" {
        return Credentials{}, fmt.Errorf("%w: %s: client_email is empty", ErrCredentialsMalformed, path)
    }
    return Credentials{Path: path, JSON: data, Email: jwt.Email, Scopes: scopes}, nil
}
