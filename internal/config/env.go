package config

import (
	"os"

	"github.com/joho/godotenv"
)

// CookieEnv names the variable holding a pre-issued NYT-S cookie.
const CookieEnv = "NYT_COOKIE"

// Env resolves variables from the process environment, falling back to
// values read from a .env file.
type Env struct {
	file map[string]string
}

// LoadEnv reads the given .env files. Files that cannot be read are ignored.
func LoadEnv(paths ...string) *Env {
	env := &Env{file: map[string]string{}}
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			continue
		}
		for k, v := range values {
			if _, ok := env.file[k]; !ok {
				env.file[k] = v
			}
		}
	}
	return env
}

// Get returns the value for key, or "" when unset everywhere.
func (e *Env) Get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if e == nil {
		return ""
	}
	return e.file[key]
}
