package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("valid config connects lazily", func(t *testing.T) {
		// minio.New only validates the endpoint, no network dial happens.
		client, err := NewClient(Config{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "raw-layer",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "raw-layer", client.bucket)
	})

	t.Run("malformed endpoint is rejected", func(t *testing.T) {
		_, err := NewClient(Config{
			Endpoint:  "http://host:with:too:many:colons",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "raw-layer",
		})
		assert.Error(t, err)
	})
}
