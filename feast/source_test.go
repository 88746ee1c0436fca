package feast

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rushteam/matchkit/core"
)

// fakeClient 按实体键取预置特征值，并记录每次请求。
type fakeClient struct {
	key      string
	features map[string]map[string]interface{}
	requests []*GetOnlineFeaturesRequest
	err      error
}

func (f *fakeClient) GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	key := f.key
	if key == "" {
		key = DefaultEntityKey
	}
	vectors := make([]FeatureVector, len(req.EntityRows))
	for i, row := range req.EntityRows {
		id, _ := row[key].(string)
		vectors[i] = FeatureVector{Values: f.features[id], EntityRow: row}
	}
	return &GetOnlineFeaturesResponse{FeatureVectors: vectors}, nil
}

func (f *fakeClient) Close() error { return nil }

// staticCatalog 返回固定目录副本。
type staticCatalog struct{ svcs []core.Service }

func (s *staticCatalog) Name() string { return "static" }

func (s *staticCatalog) Load(ctx context.Context) ([]core.Service, error) {
	out := make([]core.Service, len(s.svcs))
	copy(out, s.svcs)
	return out, nil
}

func TestSource_LoadOverlaysAttributes(t *testing.T) {
	base := &staticCatalog{svcs: []core.Service{
		{ID: "SRV_0001", BusinessType: "Retail", PriceCategory: "Low", LanguageSupport: "Hindi", LocationArea: "Mumbai"},
		{ID: "SRV_0002", BusinessType: "Technology", PriceCategory: "High", LanguageSupport: "English", LocationArea: "Pune"},
	}}
	client := &fakeClient{features: map[string]map[string]interface{}{
		"SRV_0001": {
			"service_attributes:price_category": "premium",
			"service_attributes:location_area":  "online",
		},
		// 短名键也应被识别
		"SRV_0002": {
			"language_support": "bilingual",
		},
	}}

	src := &Source{Base: base, Client: client}
	svcs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(svcs) != 2 {
		t.Fatalf("len(svcs) = %d, want 2", len(svcs))
	}

	if svcs[0].PriceCategory != "High" {
		t.Errorf("svc1 PriceCategory = %q, want %q", svcs[0].PriceCategory, "High")
	}
	if svcs[0].LocationArea != "Remote" {
		t.Errorf("svc1 LocationArea = %q, want %q", svcs[0].LocationArea, "Remote")
	}
	if svcs[0].BusinessType != "Retail" || svcs[0].LanguageSupport != "Hindi" {
		t.Errorf("svc1 untouched fields changed: %+v", svcs[0])
	}
	if svcs[1].LanguageSupport != "Both" {
		t.Errorf("svc2 LanguageSupport = %q, want %q", svcs[1].LanguageSupport, "Both")
	}
	if svcs[1].PriceCategory != "High" || svcs[1].LocationArea != "Pune" {
		t.Errorf("svc2 untouched fields changed: %+v", svcs[1])
	}
}

func TestSource_KeepsBaseOnUnusableValues(t *testing.T) {
	base := &staticCatalog{svcs: []core.Service{
		{ID: "SRV_0001", BusinessType: "Retail", PriceCategory: "Low", LanguageSupport: "Hindi", LocationArea: "Mumbai"},
	}}
	client := &fakeClient{features: map[string]map[string]interface{}{
		"SRV_0001": {
			// 闭词表外的价格与语言不覆盖
			"service_attributes:price_category":   "free",
			"service_attributes:language_support": "French",
			// 非字符串值不覆盖
			"service_attributes:business_type": float64(3),
			// 区域词表开放，新城市允许覆盖
			"service_attributes:location_area": "Gurgaon",
		},
	}}

	src := &Source{Base: base, Client: client}
	svcs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	svc := svcs[0]
	if svc.PriceCategory != "Low" {
		t.Errorf("PriceCategory = %q, want %q", svc.PriceCategory, "Low")
	}
	if svc.LanguageSupport != "Hindi" {
		t.Errorf("LanguageSupport = %q, want %q", svc.LanguageSupport, "Hindi")
	}
	if svc.BusinessType != "Retail" {
		t.Errorf("BusinessType = %q, want %q", svc.BusinessType, "Retail")
	}
	if svc.LocationArea != "Gurgaon" {
		t.Errorf("LocationArea = %q, want %q", svc.LocationArea, "Gurgaon")
	}
}

func TestSource_BatchesRequests(t *testing.T) {
	svcs := make([]core.Service, 5)
	for i := range svcs {
		svcs[i] = core.Service{ID: "SRV_000" + string(rune('1'+i))}
	}
	client := &fakeClient{features: map[string]map[string]interface{}{}}

	src := &Source{Base: &staticCatalog{svcs: svcs}, Client: client, BatchSize: 2}
	if _, err := src.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(client.requests) != 3 {
		t.Fatalf("len(requests) = %d, want 3", len(client.requests))
	}
	sizes := []int{2, 2, 1}
	for i, req := range client.requests {
		if len(req.EntityRows) != sizes[i] {
			t.Errorf("request %d rows = %d, want %d", i, len(req.EntityRows), sizes[i])
		}
		if len(req.Features) != core.NumFields {
			t.Errorf("request %d features = %d, want %d", i, len(req.Features), core.NumFields)
		}
		if req.Features[0] != "service_attributes:business_type" {
			t.Errorf("request %d first feature = %q", i, req.Features[0])
		}
		for _, row := range req.EntityRows {
			if _, ok := row[DefaultEntityKey]; !ok {
				t.Errorf("request %d row missing entity key %q", i, DefaultEntityKey)
			}
		}
	}
}

func TestSource_CustomViewAndEntityKey(t *testing.T) {
	base := &staticCatalog{svcs: []core.Service{
		{ID: "SRV_0001", PriceCategory: "Low"},
	}}
	client := &fakeClient{
		key: "sid",
		features: map[string]map[string]interface{}{
			"SRV_0001": {"svc_attrs:price_category": "High"},
		},
	}

	src := &Source{
		Base:        base,
		Client:      client,
		FeatureView: "svc_attrs",
		EntityKey:   "sid",
	}
	svcs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if svcs[0].PriceCategory != "High" {
		t.Errorf("PriceCategory = %q, want %q", svcs[0].PriceCategory, "High")
	}
	if got := client.requests[0].Features[1]; got != "svc_attrs:price_category" {
		t.Errorf("feature ref = %q, want %q", got, "svc_attrs:price_category")
	}
}

func TestSource_PropagatesClientError(t *testing.T) {
	src := &Source{
		Base:   &staticCatalog{svcs: []core.Service{{ID: "SRV_0001"}}},
		Client: &fakeClient{err: errors.New("connection refused")},
	}
	_, err := src.Load(context.Background())
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "fetch feast attributes") {
		t.Errorf("Load() error = %v, want wrapped fetch error", err)
	}
}

func TestSource_RequiresBaseAndClient(t *testing.T) {
	if _, err := (&Source{}).Load(context.Background()); err == nil || !strings.Contains(err.Error(), "base catalog") {
		t.Errorf("Load() without base error = %v", err)
	}
	src := &Source{Base: &staticCatalog{}}
	if _, err := src.Load(context.Background()); err == nil || !strings.Contains(err.Error(), "client is required") {
		t.Errorf("Load() without client error = %v", err)
	}
}

func TestSource_EmptyBaseSkipsFetch(t *testing.T) {
	client := &fakeClient{}
	src := &Source{Base: &staticCatalog{}, Client: client}
	svcs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(svcs) != 0 {
		t.Errorf("len(svcs) = %d, want 0", len(svcs))
	}
	if len(client.requests) != 0 {
		t.Errorf("len(requests) = %d, want 0", len(client.requests))
	}
}

func TestSource_Name(t *testing.T) {
	src := &Source{Base: &staticCatalog{}, Client: &fakeClient{}}
	if got := src.Name(); got != "static+feast:service_attributes" {
		t.Errorf("Name() = %q", got)
	}
}
