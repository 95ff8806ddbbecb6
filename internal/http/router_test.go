package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"jenjangkarir/internal/chips"
	intconfig "jenjangkarir/internal/config"
	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/domain/models"
	h "jenjangkarir/internal/http/handlers"
	"jenjangkarir/internal/listing"
	"jenjangkarir/internal/query"
	"jenjangkarir/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryListing serves n generated jobs and records every plan it sees.
type memoryListing struct {
	mu    sync.Mutex
	jobs  int
	plans []string
}

func (m *memoryListing) FetchJobs(_ context.Context, plan query.Plan, rng query.Range) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans = append(m.plans, plan.Describe())
	out := []models.Job{}
	for i := rng.Offset; i < rng.Offset+rng.Limit && i < m.jobs; i++ {
		out = append(out, models.Job{ID: int64(i + 1), Slug: fmt.Sprintf("job-%d", i+1), Status: domain.JobActive})
	}
	return out, nil
}

func (m *memoryListing) FetchCompanies(context.Context, query.Plan, query.Range) ([]models.Company, error) {
	return []models.Company{{ID: 1, Name: "Nusantara"}}, nil
}

func (m *memoryListing) FetchArticles(context.Context, query.Plan, query.Range) ([]models.Article, error) {
	return []models.Article{}, nil
}

func newTestRouter(t *testing.T, jobs int) (*gin.Engine, *h.Handlers) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	listingSvc := services.ListingService{Repo: &memoryListing{jobs: jobs}, PageSize: 5}
	views := listing.NewRegistry(listingSvc.Fetch, listing.Options{PageSize: 5}, listing.TriggerOptions{})
	t.Cleanup(views.CloseAll)

	hs := &h.Handlers{
		Listing: listingSvc,
		Home:    services.HomeService{Listing: listingSvc},
		Auth:    services.AuthService{Secret: []byte("rahasia-test")},
		Views:   views,
		Chips:   chips.NewRenderer(nil),
		Dialect: query.MySQL,
	}
	return NewRouter(intconfig.Env{}, hs), hs
}

func do(r http.Handler, method, target, body string, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthEchoesRequestID(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	w := do(r, http.MethodGet, "/api/health", "", "X-Request-ID", "req-42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/api/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListJobsReturnsFirstPageAndChips(t *testing.T) {
	r, _ := newTestRouter(t, 12)
	w := do(r, http.MethodGet, "/api/jobs?location=Jakarta&job_type=full-time&q=data", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Len(t, body["items"], 5)
	assert.Equal(t, true, body["has_more"])
	assert.EqualValues(t, 2, body["active_filter_count"])
	assert.Equal(t, true, body["show_reset"])

	var labels []string
	for _, c := range body["chips"].([]any) {
		labels = append(labels, c.(map[string]any)["label"].(string))
	}
	assert.Equal(t, []string{"Tipe: Penuh Waktu", "Lokasi: Jakarta"}, labels)
}

func TestViewLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, 12)

	w := do(r, http.MethodPost, "/api/views", `{"filter_type":"job","query":"location=Jakarta"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	view := decode(t, w)
	id := view["view_id"].(string)
	assert.Equal(t, "location=Jakarta", view["query"])
	assert.Len(t, view["items"], 5)

	w = do(r, http.MethodPost, "/api/views/"+id+"/filters", `{"action":"set","key":"location","values":["Jakarta","Bandung"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decode(t, w)
	assert.Equal(t, true, view["dirty"])
	assert.Equal(t, "location=Jakarta", view["query"], "the URL only moves on apply")

	w = do(r, http.MethodPost, "/api/views/"+id+"/apply", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decode(t, w)
	assert.Equal(t, false, view["dirty"])
	assert.Equal(t, "location=Jakarta&location=Bandung", view["query"])
	assert.EqualValues(t, 1, view["active_filter_count"], "one key, two values")

	w = do(r, http.MethodDelete, "/api/views/"+id+"/chips?key=location&value=Jakarta", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decode(t, w)
	assert.Equal(t, "location=Bandung", view["query"])

	w = do(r, http.MethodPost, "/api/views/"+id+"/more", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	more := decode(t, w)
	assert.Equal(t, "appended", more["result"])
	assert.Len(t, more["view"].(map[string]any)["items"], 10)

	w = do(r, http.MethodPost, "/api/views/"+id+"/scroll", `{"scroll_top":2000,"viewport_height":800,"document_height":3000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decode(t, w)
	assert.Len(t, view["items"], 12)
	assert.Equal(t, false, view["has_more"])

	w = do(r, http.MethodPost, "/api/views/"+id+"/reset", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decode(t, w)
	assert.Equal(t, "", view["query"])
	assert.Len(t, view["items"], 5, "reset reloads the first page")

	w = do(r, http.MethodDelete, "/api/views/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodGet, "/api/views/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSyncViewSkipsOwnEcho(t *testing.T) {
	r, _ := newTestRouter(t, 3)
	w := do(r, http.MethodPost, "/api/views", `{"filter_type":"company","query":"location=Bali"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["view_id"].(string)

	w = do(r, http.MethodPost, "/api/views/"+id+"/sync", `{"query":"location=Medan"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, true, out["changed"])
	assert.Equal(t, "location=Medan", out["view"].(map[string]any)["query"])
}

func TestMountRejectsUnknownFilterType(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	w := do(r, http.MethodPost, "/api/views", `{"filter_type":"gadget"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode(t, w)["code"])
}

func TestChipRemoveRedirects(t *testing.T) {
	r, _ := newTestRouter(t, 0)

	w := do(r, http.MethodGet, "/api/chips/remove?location=Jakarta&location=Bali&chip_key=location&chip_value=Jakarta&return_to=/lowongan", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/lowongan?location=Bali", w.Header().Get("Location"))

	w = do(r, http.MethodGet, "/api/chips/reset?location=Bali&q=data&return_to=//evil.example", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/?q=data", w.Header().Get("Location"))
}

func TestProtectedRoutes(t *testing.T) {
	r, hs := newTestRouter(t, 0)

	w := do(r, http.MethodGet, "/api/dashboard/applications", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := hs.Auth.Issue(5, domain.RoleUser, "Rina")
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/api/admin/stats", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, decode(t, w)["userId"])

	w = do(r, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer rusak")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutesListsRegisteredRoutes(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	w := do(r, http.MethodGet, "/api/routes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/views/:id/scroll")
}
