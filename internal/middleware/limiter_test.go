package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limiterRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.POST("/api/auth/login", ok)
	r.GET("/api/products", ok)
	return r
}

func doRequest(r *gin.Engine, method, path, ip string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":12345"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit(t *testing.T) {
	r := limiterRouter()

	t.Run("Strict tier rejects after burst", func(t *testing.T) {
		ip := "10.0.0.1"
		for i := 0; i < burstStrict; i++ {
			assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/api/auth/login", ip),
				fmt.Sprintf("request %d should pass", i+1))
		}
		assert.Equal(t, http.StatusTooManyRequests, doRequest(r, http.MethodPost, "/api/auth/login", ip))
	})

	t.Run("Tiers keep separate quotas", func(t *testing.T) {
		ip := "10.0.0.2"
		for i := 0; i < burstStrict; i++ {
			doRequest(r, http.MethodPost, "/api/auth/login", ip)
		}
		assert.Equal(t, http.StatusTooManyRequests, doRequest(r, http.MethodPost, "/api/auth/login", ip))
		// The general tier for the same IP is untouched.
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/products", ip))
	})

	t.Run("Identities keep separate quotas", func(t *testing.T) {
		for i := 0; i < burstStrict; i++ {
			doRequest(r, http.MethodPost, "/api/auth/login", "10.0.0.3")
		}
		assert.Equal(t, http.StatusTooManyRequests, doRequest(r, http.MethodPost, "/api/auth/login", "10.0.0.3"))
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/api/auth/login", "10.0.0.4"))
	})
}

func TestResolveRateTier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		path string
		tier string
	}{
		{"/api/auth/login", "strict"},
		{"/api/auth/register", "strict"},
		{"/api/cart/webhook", "strict"},
		{"/api/products", "general"},
		{"/api/cart", "general"},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, tc.path, nil)
		_, _, tier := resolveRateTier(c)
		assert.Equal(t, tc.tier, tier, tc.path)
	}
}
