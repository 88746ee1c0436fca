package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rushteam/matchkit/config"
	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/engine"
	"github.com/rushteam/matchkit/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func demoCatalog() []core.Service {
	return []core.Service{
		{
			ID:              "SRV_0001",
			Name:            "Cloud Accounting Suite",
			BusinessType:    "Technology",
			PriceCategory:   "Low",
			LanguageSupport: "Both",
			LocationArea:    "Mumbai",
			Description:     "Cloud based accounting and compliance platform for small technology businesses with GST filing support.",
		},
		{
			ID:              "SRV_0002",
			Name:            "Managed IT Helpdesk",
			BusinessType:    "Technology",
			PriceCategory:   "Medium",
			LanguageSupport: "Both",
			LocationArea:    "Delhi",
			Description:     "Round the clock IT support desk.",
		},
		{
			ID:              "SRV_0003",
			Name:            "Store Front Designers",
			BusinessType:    "Retail",
			PriceCategory:   "High",
			LanguageSupport: "Hindi",
			LocationArea:    "Chennai",
			Description:     "Premium interior design studio for retail outlets.",
		},
	}
}

type stubSource struct {
	services []core.Service
	err      error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(_ context.Context) ([]core.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.services, nil
}

func newTestServer(t *testing.T, engineOpts []engine.Option, serverOpts ...Option) *Server {
	t.Helper()
	eng, err := engine.New(config.Default().Engine, engineOpts...)
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	if err := eng.SetCatalog(context.Background(), demoCatalog()); err != nil {
		t.Fatalf("SetCatalog() error = %v", err)
	}
	return NewServer(eng, serverOpts...)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func prefBody() map[string]any {
	return map[string]any{
		"business_type":    "Technology",
		"price_category":   "Low",
		"language_support": "Both",
		"location_area":    "Mumbai",
	}
}

func TestServer_Recommend(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/recommend", map[string]any{
		"preference": prefBody(),
		"top_n":      5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	if w.Header().Get(HeaderRequestID) == "" {
		t.Error("response missing X-Request-ID header")
	}

	var resp RecommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("Total = %d, want 2", resp.Total)
	}
	if resp.Strategy != "weighted" {
		t.Errorf("Strategy = %q, want weighted", resp.Strategy)
	}
	if resp.RequestID == "" {
		t.Error("RequestID is empty")
	}

	top := resp.Recommendations[0]
	if top.ServiceID != "SRV_0001" {
		t.Errorf("top.ServiceID = %q, want SRV_0001", top.ServiceID)
	}
	if top.Score != 1.0 {
		t.Errorf("top.Score = %v, want 1.0", top.Score)
	}
	if top.Quality != core.TierHigh {
		t.Errorf("top.Quality = %v, want High", top.Quality)
	}
	if top.Explanation == "" {
		t.Error("top.Explanation is empty")
	}
	if resp.Summary.TotalRecommendations != 2 {
		t.Errorf("Summary.TotalRecommendations = %d, want 2", resp.Summary.TotalRecommendations)
	}
}

func TestServer_RecommendDefaultTopN(t *testing.T) {
	srv := newTestServer(t, nil)

	// 不带 top_n：用引擎配置默认值，而不是报错。
	w := doJSON(t, srv, http.MethodPost, "/api/v1/recommend", map[string]any{
		"preference": prefBody(),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	var resp RecommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, want 2", resp.Total)
	}
}

func TestServer_RecommendExplicitZeroTopN(t *testing.T) {
	srv := newTestServer(t, nil)

	// 显式 top_n=0 是调用方错误，不做默认兜底。
	w := doJSON(t, srv, http.MethodPost, "/api/v1/recommend", map[string]any{
		"preference": prefBody(),
		"top_n":      0,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["code"] != core.ErrorCodeInvalidInput {
		t.Errorf("code = %v, want %s", resp["code"], core.ErrorCodeInvalidInput)
	}
}

func TestServer_RecommendValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	cases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{"preference": `, http.StatusBadRequest},
		{"missing preference field", `{"preference": {"business_type": "Technology"}, "top_n": 5}`, http.StatusBadRequest},
		{"unknown strategy", `{"preference": {"business_type": "Technology", "price_category": "Low", "language_support": "Both", "location_area": "Mumbai"}, "top_n": 5, "strategy": "bert"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestServer_Explain(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/explain", map[string]any{
		"service_id": "SRV_0001",
		"preference": prefBody(),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	var resp ExplainResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Explanation.ServiceID != "SRV_0001" {
		t.Errorf("ServiceID = %q, want SRV_0001", resp.Explanation.ServiceID)
	}
	if resp.Explanation.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", resp.Explanation.Score)
	}
	if !strings.Contains(resp.Explanation.Explanation, "business type") {
		t.Errorf("Explanation = %q, want mention of business type", resp.Explanation.Explanation)
	}
}

func TestServer_ExplainNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/explain", map[string]any{
		"service_id": "SRV_9999",
		"preference": prefBody(),
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["code"] != core.ErrorCodeNotFound {
		t.Errorf("code = %v, want %s", resp["code"], core.ErrorCodeNotFound)
	}
}

func TestServer_ExplainMissingID(t *testing.T) {
	srv := newTestServer(t, nil)
	w := doJSON(t, srv, http.MethodPost, "/api/v1/explain", map[string]any{
		"preference": prefBody(),
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestServer_Compare(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/compare", map[string]any{
		"preference": prefBody(),
		"top_n":      3,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	var resp CompareResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(resp.Results))
	}
	for _, name := range []string{"weighted", "cosine", "knn"} {
		recs, ok := resp.Results[name]
		if !ok {
			t.Errorf("Results missing strategy %q", name)
			continue
		}
		if len(recs) == 0 || recs[0].ServiceID != "SRV_0001" {
			t.Errorf("strategy %q top = %+v, want SRV_0001 first", name, recs)
		}
	}
}

func TestServer_Stats(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp engine.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.TotalServices != 3 {
		t.Errorf("TotalServices = %d, want 3", resp.TotalServices)
	}
	if resp.BusinessTypes != 2 {
		t.Errorf("BusinessTypes = %d, want 2", resp.BusinessTypes)
	}
}

func TestServer_Services(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Total    int            `json:"total"`
		Services []core.Service `json:"services"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Total != 3 || len(resp.Services) != 3 {
		t.Errorf("total = %d, len(services) = %d, want 3/3", resp.Total, len(resp.Services))
	}
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
}

func TestServer_Reload(t *testing.T) {
	src := &stubSource{services: demoCatalog()}
	srv := newTestServer(t, []engine.Option{engine.WithSource(src)})

	w := doJSON(t, srv, http.MethodPost, "/api/v1/reload", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["total_services"] != float64(3) {
		t.Errorf("total_services = %v, want 3", resp["total_services"])
	}
}

func TestServer_ReloadWithoutSource(t *testing.T) {
	srv := newTestServer(t, nil)
	w := doJSON(t, srv, http.MethodPost, "/api/v1/reload", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}
}

func TestServer_ExclusionLifecycle(t *testing.T) {
	st := store.NewMemoryStore()
	srv := newTestServer(t, []engine.Option{engine.WithStore(st)}, WithStore(st))

	recommend := func() RecommendResponse {
		t.Helper()
		w := doJSON(t, srv, http.MethodPost, "/api/v1/recommend", map[string]any{
			"preference": prefBody(),
			"top_n":      5,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("recommend status = %d, body = %s", w.Code, w.Body.String())
		}
		var resp RecommendResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		return resp
	}

	if got := recommend(); got.Total != 2 {
		t.Fatalf("baseline Total = %d, want 2", got.Total)
	}

	w := doJSON(t, srv, http.MethodPut, "/api/v1/exclusions/SRV_0001", map[string]any{
		"reason": "complaint under review",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add exclusion status = %d, body = %s", w.Code, w.Body.String())
	}

	if got := recommend(); got.Total != 1 || got.Recommendations[0].ServiceID != "SRV_0002" {
		t.Fatalf("after exclusion: Total = %d, want only SRV_0002", got.Total)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/v1/exclusions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list exclusions status = %d", w.Code)
	}
	var listResp struct {
		Total      int              `json:"total"`
		Exclusions []ExclusionEntry `json:"exclusions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if listResp.Total != 1 || listResp.Exclusions[0].ServiceID != "SRV_0001" {
		t.Fatalf("exclusions = %+v, want SRV_0001", listResp)
	}
	if listResp.Exclusions[0].Reason != "complaint under review" {
		t.Errorf("Reason = %q, want complaint under review", listResp.Exclusions[0].Reason)
	}

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/exclusions/SRV_0001", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove exclusion status = %d", w.Code)
	}
	if got := recommend(); got.Total != 2 {
		t.Errorf("after removal: Total = %d, want 2", got.Total)
	}
}

func TestServer_ExclusionsRequireStore(t *testing.T) {
	srv := newTestServer(t, nil)
	w := doJSON(t, srv, http.MethodGet, "/api/v1/exclusions", nil)
	if w.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501, body = %s", w.Code, w.Body.String())
	}
}

func TestServer_RequestIDPropagation(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "req-abc-123")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "req-abc-123" {
		t.Errorf("X-Request-ID = %q, want req-abc-123 (caller supplied)", got)
	}
}
