package config

import (
	"os"
	"strings"
)

// Environment variables holding the service-account identity for the
// document database backend.
const (
	EnvFirebaseProjectID    = "FIREBASE_PROJECT_ID"
	EnvFirebasePrivateKeyID = "FIREBASE_PRIVATE_KEY_ID"
	EnvFirebasePrivateKey   = "FIREBASE_PRIVATE_KEY"
	EnvFirebaseClientEmail  = "FIREBASE_CLIENT_EMAIL"
	EnvFirebaseClientID     = "FIREBASE_CLIENT_ID"
)

// Credentials is the resolved service-account identity used to
// authenticate to the document database. Empty fields are valid
// placeholders: a zero value means the process runs in offline mode.
// Immutable after construction.
type Credentials struct {
	ProjectID    string
	PrivateKeyID string
	PrivateKey   string // PEM, newline-normalized
	ClientEmail  string
	ClientID     string
}

// ResolveCredentials reads the five FIREBASE_* environment variables.
// Literal `\n` sequences in the private key are normalized to real
// newlines, the shape most secret managers deliver PEM material in.
// Resolution never fails; unset variables yield empty strings.
func ResolveCredentials() Credentials {
	return Credentials{
		ProjectID:    os.Getenv(EnvFirebaseProjectID),
		PrivateKeyID: os.Getenv(EnvFirebasePrivateKeyID),
		PrivateKey:   strings.ReplaceAll(os.Getenv(EnvFirebasePrivateKey), `\n`, "\n"),
		ClientEmail:  os.Getenv(EnvFirebaseClientEmail),
		ClientID:     os.Getenv(EnvFirebaseClientID),
	}
}

// IsZero reports whether no credential field is set. A zero value is
// the "absent" state that enables degraded/offline startup.
func (c Credentials) IsZero() bool {
	return c.ProjectID == "" &&
		c.PrivateKeyID == "" &&
		c.PrivateKey == "" &&
		c.ClientEmail == "" &&
		c.ClientID == ""
}
