package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-frontend/internal/cache"
	"vibe-frontend/internal/config"
	"vibe-frontend/internal/grid"
	"vibe-frontend/internal/middleware"
	"vibe-frontend/internal/session"
	"vibe-frontend/internal/upstream"
)

func proxyTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Environment = "development"
	cfg.Session.CookieName = "vibe_hr_token"
	cfg.Session.MaxAgeMinutes = 480
	cfg.Session.RememberMeDays = 30
	return cfg
}

// sessionToken is a structurally valid JWT; the signature is never checked
// by this layer.
const sessionToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
	"eyJ1c2VyX2lkIjo0Mn0." +
	"c2ln"

func withSession(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: "vibe_hr_token", Value: sessionToken})
	return r
}

// newProxyMux wires one proxy route behind the session middleware the way the
// router does.
func newProxyMux(api *upstream.Client, route ProxyRoute) http.Handler {
	sessions := session.NewManager(proxyTestConfig())
	authMw := middleware.NewAuthMiddleware(sessions)
	h := NewProxyHandler(api, cache.NewReferenceCache(time.Minute))

	mux := http.NewServeMux()
	if route.Schema != nil {
		mux.Handle(route.LocalPrefix+"/batch", authMw.RequireSession(h.Batch(route)))
	}
	mux.Handle(route.LocalPrefix+"/", authMw.RequireSession(h.Forward(route)))
	mux.Handle(route.LocalPrefix, authMw.RequireSession(h.Forward(route)))
	return mux
}

func TestForwardRelaysUpstreamResponse(t *testing.T) {
	var gotPath, gotAuth, gotMethod string
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"items":[],"total_count":0}`))
	}))
	defer up.Close()

	route := ProxyRoute{LocalPrefix: "/api/mng/companies", UpstreamPrefix: "/api/v1/mng/companies"}
	srv := newProxyMux(upstream.NewClient(up.URL), route)

	r := withSession(httptest.NewRequest(http.MethodGet, "/api/mng/companies?page=2&size=50", nil))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/api/v1/mng/companies?page=2&size=50", gotPath)
	assert.Equal(t, "Bearer "+sessionToken, gotAuth)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.JSONEq(t, `{"items":[],"total_count":0}`, rec.Body.String())
}

func TestForwardPreservesSubPaths(t *testing.T) {
	var gotPath string
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer up.Close()

	route := ProxyRoute{LocalPrefix: "/api/hri/requests", UpstreamPrefix: "/api/v1/hri/requests"}
	srv := newProxyMux(upstream.NewClient(up.URL), route)

	r := withSession(httptest.NewRequest(http.MethodPost, "/api/hri/requests/17/reject", strings.NewReader(`{"reason":"incomplete"}`)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)

	assert.Equal(t, "/api/v1/hri/requests/17/reject", gotPath)
}

func TestForwardRelaysUpstreamErrorStatus(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"duplicate code"}`))
	}))
	defer up.Close()

	route := ProxyRoute{LocalPrefix: "/api/pay/payroll-codes", UpstreamPrefix: "/api/v1/pay/payroll-codes"}
	srv := newProxyMux(upstream.NewClient(up.URL), route)

	r := withSession(httptest.NewRequest(http.MethodPost, "/api/pay/payroll-codes", strings.NewReader(`{}`)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"detail":"duplicate code"}`, rec.Body.String())
}

func TestForwardUnreachableUpstreamYields502(t *testing.T) {
	route := ProxyRoute{LocalPrefix: "/api/mng/companies", UpstreamPrefix: "/api/v1/mng/companies"}
	srv := newProxyMux(upstream.NewClient("http://127.0.0.1:1"), route)

	r := withSession(httptest.NewRequest(http.MethodGet, "/api/mng/companies", nil))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream unreachable")
}

func TestForwardRequiresSession(t *testing.T) {
	route := ProxyRoute{LocalPrefix: "/api/mng/companies", UpstreamPrefix: "/api/v1/mng/companies"}
	srv := newProxyMux(upstream.NewClient("http://127.0.0.1:1"), route)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/mng/companies", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestBatchForwardsValidPayload(t *testing.T) {
	var gotBody grid.BatchRequest
	var gotPath string
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.Write([]byte(`{"items":[],"total_count":1,"inserted_count":1,"updated_count":0,"deleted_count":0}`))
	}))
	defer up.Close()

	route := ProxyRoute{LocalPrefix: "/api/mng/companies", UpstreamPrefix: "/api/v1/mng/companies", Schema: &companySchema}
	srv := newProxyMux(upstream.NewClient(up.URL), route)

	body := `{"items":[{"id":null,"name":"Vibe Systems","biz_number":"123-45-67890"}],"delete_ids":[4]}`
	r := withSession(httptest.NewRequest(http.MethodPost, "/api/mng/companies/batch", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/api/v1/mng/companies/batch", gotPath)
	assert.Equal(t, []int64{4}, gotBody.DeleteIDs)
	assert.NotEmpty(t, gotBody.Token, "idempotency token stamped when absent")
}

func TestBatchRejectsMalformedJSON(t *testing.T) {
	route := ProxyRoute{LocalPrefix: "/api/mng/companies", UpstreamPrefix: "/api/v1/mng/companies", Schema: &companySchema}
	srv := newProxyMux(upstream.NewClient("http://127.0.0.1:1"), route)

	r := withSession(httptest.NewRequest(http.MethodPost, "/api/mng/companies/batch", strings.NewReader("{not json")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchRejectsSchemaViolations(t *testing.T) {
	route := ProxyRoute{LocalPrefix: "/api/mng/companies", UpstreamPrefix: "/api/v1/mng/companies", Schema: &companySchema}
	srv := newProxyMux(upstream.NewClient("http://127.0.0.1:1"), route)

	// _status is client-only bookkeeping and must never reach the backend.
	body := `{"items":[{"id":null,"name":"Vibe","biz_number":"1","_status":"added"}],"delete_ids":[]}`
	r := withSession(httptest.NewRequest(http.MethodPost, "/api/mng/companies/batch", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown field")
}
