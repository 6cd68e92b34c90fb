package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"imeicheck/pkg/checker"
	"imeicheck/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestService(demoMode bool) *HandlerService {
	cfg := &config.Config{
		Server: &config.ServerConfig{Port: 3000, Mode: "test", DemoMode: demoMode},
	}
	return NewHandlerService(cfg, nil)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestHealth(t *testing.T) {
	h := newTestService(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	h.Health(c)

	if w.Code != http.StatusOK {
		t.Fatalf("期望状态码 200，实际 %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	if body["status"] != "OK" {
		t.Errorf("status 期望 OK，实际 %v", body["status"])
	}
	if body["mode"] != "demo" {
		t.Errorf("demo 模式下 mode 期望 demo，实际 %v", body["mode"])
	}
}

func TestCheckIMEIMissing(t *testing.T) {
	h := newTestService(false)

	w := postJSON(t, h.CheckIMEI, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺失 IMEI 期望 400，实际 %d", w.Code)
	}

	w = postJSON(t, h.CheckIMEI, `not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("非法 JSON 期望 400，实际 %d", w.Code)
	}
}

func TestCheckBatchIMEIMissing(t *testing.T) {
	h := newTestService(false)

	w := postJSON(t, h.CheckBatchIMEI, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺失 IMEI 数组期望 400，实际 %d", w.Code)
	}
}

func TestDemoCheckIMEI(t *testing.T) {
	h := newTestService(true)

	w := postJSON(t, h.DemoCheckIMEI, `{"imei":"123456789012345"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("期望状态码 200，实际 %d", w.Code)
	}

	var result checker.CheckResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	if result.IMEI != "123456789012345" {
		t.Errorf("结果 IMEI 错误: %s", result.IMEI)
	}
	if result.Category == "" || result.Status == "" {
		t.Error("demo 结果应包含分类与状态")
	}
}

func TestDemoCheckIMEIWrongFormat(t *testing.T) {
	h := newTestService(true)

	w := postJSON(t, h.DemoCheckIMEI, `{"imei":"abc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("格式错误是结果而非失败，期望 200，实际 %d", w.Code)
	}

	var result checker.CheckResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Category != checker.CategoryWrongFormat {
		t.Errorf("期望 wrong-format，实际 %s", result.Category)
	}
}

func TestDemoCheckBatchIMEILimit(t *testing.T) {
	h := newTestService(true)

	body := `{"imeis":["111111111111111","222222222222222","333333333333333","444444444444444","555555555555555","666666666666666","777777777777777"]}`
	w := postJSON(t, h.DemoCheckBatchIMEI, body)
	if w.Code != http.StatusOK {
		t.Fatalf("期望状态码 200，实际 %d", w.Code)
	}

	var resp struct {
		Success bool                  `json:"success"`
		Results []checker.CheckResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("demo 批量响应应标记 success")
	}
	if len(resp.Results) != demoBatchLimit {
		t.Errorf("demo 批量最多处理 %d 条，实际 %d", demoBatchLimit, len(resp.Results))
	}
}

func TestDemoCheckBatchIMEIMixed(t *testing.T) {
	h := newTestService(true)

	w := postJSON(t, h.DemoCheckBatchIMEI, `{"imeis":["111111111111111","abc"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("期望状态码 200，实际 %d", w.Code)
	}

	var resp struct {
		Results []checker.CheckResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("期望 2 个结果，实际 %d", len(resp.Results))
	}
	if resp.Results[1].Category != checker.CategoryWrongFormat {
		t.Errorf("第二个结果期望 wrong-format，实际 %s", resp.Results[1].Category)
	}
}
