package internal

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"repopulse/internal/checkpoint"
	"repopulse/internal/controllers"
	"repopulse/internal/structures"
	"repopulse/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *checkpoint.Store {
	t.Helper()
	conf := &structures.Config{Persistence: structures.Persistence{FilePath: filepath.Join(t.TempDir(), "checkpoint.json")}}
	return checkpoint.NewStore(conf, checkpoint.NoCompression{}, &testutil.MockLogger{}, &testutil.MockMetrics{})
}

func newTestHistoryController(t *testing.T) *controllers.HistoryController {
	return controllers.NewHistoryController(&testutil.MockLogger{}, newTestStore(t), testutil.NewMockCache())
}

func TestInitRoutes_RegistersHistoryRoutes(t *testing.T) {
	router := InitRoutes(newTestHistoryController(t))
	routes := router.GetRoutes()

	require.Len(t, routes, 2)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/histories")
	assert.Contains(t, urls, "/history")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(newTestHistoryController(t))

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	req := httptest.NewRequest(http.MethodPost, "/histories", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/histories", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
