package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"FrontierSim/internal/shared/security"
	"FrontierSim/internal/shared/transport"
)

func TestParseBizCode_从响应体提取(t *testing.T) {
	if code, ok := parseBizCode([]byte(`{"code":404,"msg":"x"}`)); !ok || code != 404 {
		t.Fatalf("code=%d ok=%v", code, ok)
	}
	if _, ok := parseBizCode([]byte(`{"msg":"x"}`)); ok {
		t.Fatalf("缺 code 字段时应返回 false")
	}
	if _, ok := parseBizCode([]byte(`not json`)); ok {
		t.Fatalf("非 json 应返回 false")
	}
}

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/x", AdminAuth(), func(c *gin.Context) {
		claims := c.MustGet(ClaimsKey).(*security.Claims)
		c.JSON(http.StatusOK, gin.H{"code": transport.OK, "operator": claims.Operator})
	})
	return r
}

func TestAdminAuth_缺少token(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	w := httptest.NewRecorder()
	newAuthEngine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAdminAuth_合法token放行(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	token, err := security.Award("ops", security.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newAuthEngine().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		Operator string `json:"operator"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Operator != "ops" {
		t.Fatalf("operator = %q", body.Operator)
	}
}
