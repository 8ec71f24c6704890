package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blueflylabor/fakeTape/simulator"
)

func newTestServer() *Server {
	return NewServer(":0", simulator.New(4096, simulator.WithSeed(42)))
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("编码请求体失败: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 得到 %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("期望 status=ok, 得到 %v", resp["status"])
	}
}

func TestStrategies(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodGet, "/v1/strategies", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 得到 %d", w.Code)
	}

	var resp struct {
		Strategies []string `json:"strategies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Strategies) != 3 {
		t.Errorf("期望 3 个内置策略, 得到 %v", resp.Strategies)
	}
}

func TestSimulate(t *testing.T) {
	srv := newTestServer()

	w := doRequest(t, srv, http.MethodPost, "/v1/simulate", map[string]any{
		"block_count": 200,
		"query_count": 20,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 得到 %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		BlockCount int                `json:"block_count"`
		QueryCount int                `json:"query_count"`
		Results    []simulator.Result `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("期望 3 条结果, 得到 %d", len(resp.Results))
	}
	fp := resp.Results[0].WorkloadFingerprint
	for _, res := range resp.Results {
		if res.WorkloadFingerprint != fp {
			t.Errorf("策略 %s 的数据集指纹不一致", res.StrategyName)
		}
		if res.RunID == "" {
			t.Error("RunID 不应为空")
		}
	}

	// 历史结果应可查询
	w = doRequest(t, srv, http.MethodGet, "/v1/results", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 得到 %d", w.Code)
	}
	var hist struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if hist.Count != 3 {
		t.Errorf("期望 3 条历史结果, 得到 %d", hist.Count)
	}
}

func TestSimulate_BadRequest(t *testing.T) {
	srv := newTestServer()

	// 缺少必填字段
	w := doRequest(t, srv, http.MethodPost, "/v1/simulate", map[string]any{
		"block_count": 100,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺少 query_count 期望 400, 得到 %d", w.Code)
	}

	// 未知策略名
	w = doRequest(t, srv, http.MethodPost, "/v1/simulate", map[string]any{
		"block_count": 100,
		"query_count": 10,
		"strategies":  []string{"btree"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("未知策略期望 400, 得到 %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 得到 %d", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("指标响应不应为空")
	}
}
