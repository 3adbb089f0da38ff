package publisher

import (
    "context"
    "net/http"

    androidpublisher "google.golang.org/api/androidpublisher/v3"
    "google.golang.org/api/option"
    htransport "google.golang.org/api/transport/http"
)

const Scope = androidpublisher.AndroidpublisherScope

// Client is a thin wrapper over the Play Developer API edits and reviews
// resources.
type Client struct {
    srv      *androidpublisher.Service
    hc       *http.Client
    basePath string
}

// New builds a client authenticated as the service account in creds. An
// empty endpoint means the public Play Developer API.
func New(ctx context.Context, creds Credentials, endpoint string) (*Client, error) {
    scopes := creds.Scopes
    if len(scopes) == 0 {
        scopes = []string{Scope}
    }
    hc, _, err := htransport.NewClient(ctx,
        option.WithCredentialsJSON(creds.JSON),
        option.WithScopes(scopes...),
    )
    if err != nil {
        return nil, err
    }
    return NewWithHTTPClient(ctx, hc, endpoint)
}

// NewWithHTTPClient builds a client on top of an already authenticated
// http.Client.
func NewWithHTTPClient(ctx context.Context, hc *http.Client, endpoint string) (*Client, error) {
    opts := []option.ClientOption{option.WithHTTPClient(hc)}
    if endpoint != "" {
        opts = append(opts, option.WithEndpoint(endpoint))
    }
    srv, err := androidpublisher.NewService(ctx, opts...)
    if err != nil {
        return nil, err
    }
    return &Client{srv: srv, hc: hc, basePath: srv.BasePath}, nil
}
