package publisher

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithHTTPClient_BasePath(t *testing.T) {
	c, err := NewWithHTTPClient(context.Background(), http.DefaultClient, "")
	require.NoError(t, err)
	assert.Equal(t, "https://androidpublisher.googleapis.com/", c.basePath)
	assert.Equal(t, c.srv.BasePath, c.basePath)

	c, err = NewWithHTTPClient(context.Background(), http.DefaultClient, "http://127.0.0.1:9/")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9/", c.basePath)
	assert.Equal(t, c.srv.BasePath, c.basePath)
}
