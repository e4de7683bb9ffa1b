package disney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/models"
)

func TestCatalogFallsBackToCompiledList(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{CatalogURL: "http://127.0.0.1:0/%s"}
	catalog := NewCatalog(cfg, NewClient(cfg, logger), logger)

	assert.Equal(t, FallbackRegions(models.VariantStar), catalog.Regions(models.VariantStar))
	assert.Contains(t, catalog.Regions(models.VariantDisney), "US")
}

func TestCatalogRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, models.VariantDisney.CatalogClient()):
			w.Write([]byte(`{"data": {"compliance": {"countries": ["us", "PL", "pl", "XYZ"]}}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.retries = 0
	logger, _ := test.NewNullLogger()
	catalog := NewCatalog(&config.Config{CatalogURL: server.URL + "/jgc/%s/configuration/site"}, client, logger)

	err := catalog.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "star")

	assert.Equal(t, []string{"US", "PL"}, catalog.Regions(models.VariantDisney))
	// Star+ keeps serving its fallback list
	assert.Equal(t, FallbackRegions(models.VariantStar), catalog.Regions(models.VariantStar))

	// Callers get their own copy
	regions := catalog.Regions(models.VariantDisney)
	regions[0] = "ZZ"
	assert.Equal(t, "US", catalog.Regions(models.VariantDisney)[0])
}
