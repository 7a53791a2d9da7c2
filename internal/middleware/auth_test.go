package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alihfala/mando-articles/pkg/jwt"
	"github.com/gin-gonic/gin"
)

func testManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15*time.Minute, time.Hour, "test")
}

func TestJWTAuth_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := testManager()
	pair, _ := mgr.GeneratePair(7, "ali", false)

	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(JWTAuth(mgr))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})

	c.Request, _ = http.NewRequest("GET", "/test", nil)
	c.Request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, c.Request)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(JWTAuth(testManager()))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	c.Request, _ = http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, c.Request)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := testManager()
	pair, _ := mgr.GeneratePair(7, "ali", false)

	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(JWTAuth(mgr))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	c.Request, _ = http.NewRequest("GET", "/test", nil)
	c.Request.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	r.ServeHTTP(w, c.Request)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestOptionalJWTAuth_SetsIdentityWhenTokenPresent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := testManager()
	pair, _ := mgr.GeneratePair(7, "ali", false)

	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(OptionalJWTAuth(mgr))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})

	c.Request, _ = http.NewRequest("GET", "/test", nil)
	c.Request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, c.Request)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":7}` {
		t.Errorf("expected user_id 7, got %s", body)
	}
}

func TestOptionalJWTAuth_AnonymousPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(OptionalJWTAuth(testManager()))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})

	c.Request, _ = http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, c.Request)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":0}` {
		t.Errorf("expected anonymous user_id 0, got %s", body)
	}
}

func TestRequireWriter_BlocksGuest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := testManager()
	pair, _ := mgr.GeneratePair(7, "guest_abc", true)

	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(JWTAuth(mgr))
	r.Use(RequireWriter())
	r.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	c.Request, _ = http.NewRequest("POST", "/test", nil)
	c.Request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, c.Request)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireWriter_AllowsFullAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := testManager()
	pair, _ := mgr.GeneratePair(7, "ali", false)

	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(JWTAuth(mgr))
	r.Use(RequireWriter())
	r.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	c.Request, _ = http.NewRequest("POST", "/test", nil)
	c.Request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, c.Request)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
