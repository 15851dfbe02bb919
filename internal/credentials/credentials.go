// Package credentials supplies the OAuth 1.0a secrets and account id used to
// sign X API requests. Values come from a dotenv file; variables already set
// in the process environment win over the file.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvConsumerKey       = "X_CONSUMER_KEY"
	EnvConsumerSecret    = "X_CONSUMER_SECRET"
	EnvAccessToken       = "X_ACCESS_TOKEN"
	EnvAccessTokenSecret = "X_ACCESS_TOKEN_SECRET"
	EnvUserID            = "X_USER_ID"
	EnvProxyURL          = "X_PROXY_URL"
	EnvAPIBase           = "X_API_BASE"
)

var ErrEnvFileNotFound = errors.New("env file not found")

// MissingError lists every required variable that was empty or unset.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	return "missing environment variables: " + strings.Join(e.Names, ", ")
}

type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
	UserID            string

	// optional
	ProxyURL string
	APIBase  string
}

// Missing returns the names of unset required variables, the four signing
// secrets first and then the user id when withUserID is set.
func (c Credentials) Missing(withUserID bool) []string {
	var missing []string
	for _, kv := range []struct{ name, val string }{
		{EnvConsumerKey, c.ConsumerKey},
		{EnvConsumerSecret, c.ConsumerSecret},
		{EnvAccessToken, c.AccessToken},
		{EnvAccessTokenSecret, c.AccessTokenSecret},
	} {
		if kv.val == "" {
			missing = append(missing, kv.name)
		}
	}
	if withUserID && c.UserID == "" {
		missing = append(missing, EnvUserID)
	}
	return missing
}

// Provider hands out a complete set of credentials or an error explaining
// why it cannot.
type Provider interface {
	Credentials() (Credentials, error)
}

// OpenFunc returns the Provider for the env file path given on the command
// line.
type OpenFunc func(path string) Provider

// OpenEnvFile is the OpenFunc used by the commands.
func OpenEnvFile(path string) Provider {
	return EnvFile{Path: path}
}

// EnvFile is a Provider backed by a dotenv file.
type EnvFile struct {
	Path string

	// Lookup reads the process environment. Defaults to os.LookupEnv.
	Lookup func(key string) (string, bool)
}

func (e EnvFile) Credentials() (Credentials, error) {
	c, err := e.Load()
	if err != nil {
		return Credentials{}, err
	}
	if missing := c.Missing(true); len(missing) > 0 {
		return Credentials{}, &MissingError{Names: missing}
	}
	return c, nil
}

// Load reads the file and resolves every variable without checking that the
// required ones are present.
func (e EnvFile) Load() (Credentials, error) {
	fi, err := os.Stat(e.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, fmt.Errorf("%w: %s", ErrEnvFileNotFound, e.Path)
		}
		return Credentials{}, fmt.Errorf("stat env file: %w", err)
	}
	if fi.IsDir() {
		return Credentials{}, fmt.Errorf("%w: %s is a directory", ErrEnvFileNotFound, e.Path)
	}

	file, err := godotenv.Read(e.Path)
	if err != nil {
		return Credentials{}, fmt.Errorf("parsing env file %s: %w", e.Path, err)
	}

	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(file[key])
	}

	return Credentials{
		ConsumerKey:       get(EnvConsumerKey),
		ConsumerSecret:    get(EnvConsumerSecret),
		AccessToken:       get(EnvAccessToken),
		AccessTokenSecret: get(EnvAccessTokenSecret),
		UserID:            get(EnvUserID),
		ProxyURL:          get(EnvProxyURL),
		APIBase:           get(EnvAPIBase),
	}, nil
}
