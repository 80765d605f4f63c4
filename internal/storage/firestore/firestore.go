// Package firestore implements the storage interfaces on top of Cloud
// Firestore, authenticated with the service-account identity resolved
// by the config package.
package firestore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	fs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"trade-state/internal/config"
)

// Fixed Google OAuth endpoints baked into service-account credentials.
const (
	authURI             = "https://accounts.google.com/o/oauth2/auth"
	tokenURI            = "https://oauth2.googleapis.com/token"
	authProviderCertURL = "https://www.googleapis.com/oauth2/v1/certs"
	clientCertURLPrefix = "https://www.googleapis.com/robot/v1/metadata/x509/"
)

// serviceAccount is the JSON shape the Google SDK expects. The typed
// config.Credentials record is converted to it only at this boundary.
type serviceAccount struct {
	Type                string `json:"type"`
	ProjectID           string `json:"project_id"`
	PrivateKeyID        string `json:"private_key_id"`
	PrivateKey          string `json:"private_key"`
	ClientEmail         string `json:"client_email"`
	ClientID            string `json:"client_id"`
	AuthURI             string `json:"auth_uri"`
	TokenURI            string `json:"token_uri"`
	AuthProviderCertURL string `json:"auth_provider_x509_cert_url"`
	ClientCertURL       string `json:"client_x509_cert_url"`
}

// serviceAccountJSON builds the credential payload handed to the SDK.
func serviceAccountJSON(creds config.Credentials) ([]byte, error) {
	sa := serviceAccount{
		Type:                "service_account",
		ProjectID:           creds.ProjectID,
		PrivateKeyID:        creds.PrivateKeyID,
		PrivateKey:          creds.PrivateKey,
		ClientEmail:         creds.ClientEmail,
		ClientID:            creds.ClientID,
		AuthURI:             authURI,
		TokenURI:            tokenURI,
		AuthProviderCertURL: authProviderCertURL,
		ClientCertURL:       clientCertURLPrefix + creds.ClientEmail,
	}

	data, err := json.Marshal(sa)
	if err != nil {
		return nil, fmt.Errorf("marshal service account: %w", err)
	}
	return data, nil
}

// The firebase app may be registered at most once per process. The
// sync.Once makes repeated connection attempts (including concurrent
// ones) reuse the first registration instead of duplicating it.
var (
	connectOnce sync.Once
	sharedConn  *fs.Client
	connectErr  error
)

// Client wraps the shared Firestore client for dependency injection.
type Client struct {
	conn *fs.Client
}

// Connect returns the process-wide Firestore client, establishing it
// on first call. Later calls reuse the same client, or report the same
// error if the first attempt failed; the handle is never re-created
// within one process.
func Connect(ctx context.Context, creds config.Credentials) (*Client, error) {
	connectOnce.Do(func() {
		payload, err := serviceAccountJSON(creds)
		if err != nil {
			connectErr = err
			return
		}

		app, err := firebase.NewApp(ctx,
			&firebase.Config{ProjectID: creds.ProjectID},
			option.WithCredentialsJSON(payload),
		)
		if err != nil {
			connectErr = fmt.Errorf("initialize firebase app: %w", err)
			return
		}

		conn, err := app.Firestore(ctx)
		if err != nil {
			connectErr = fmt.Errorf("open firestore client: %w", err)
			return
		}

		sharedConn = conn
	})

	if connectErr != nil {
		return nil, connectErr
	}
	return &Client{conn: sharedConn}, nil
}

// Close releases the underlying client. Because the client is shared
// process-wide, Close should only be called at process shutdown.
func (c *Client) Close() error {
	return c.conn.Close()
}
