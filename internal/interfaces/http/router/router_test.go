package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(NewDomainGroup("work-orders", "/work-orders"), NewDomainGroup("wallets", "/wallets"))

	assert.Len(t, r.registrars, 2)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("system", "/system")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/system/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", g.Name())
	})

	t.Run("registers routes for each method", func(t *testing.T) {
		tests := []struct {
			method       string
			register     func(g *DomainGroup, handler gin.HandlerFunc)
			expectedCode int
		}{
			{"GET", func(g *DomainGroup, h gin.HandlerFunc) { g.GET("/items/:id", h) }, http.StatusOK},
			{"POST", func(g *DomainGroup, h gin.HandlerFunc) { g.POST("/items/:id", h) }, http.StatusOK},
			{"PUT", func(g *DomainGroup, h gin.HandlerFunc) { g.PUT("/items/:id", h) }, http.StatusOK},
			{"PATCH", func(g *DomainGroup, h gin.HandlerFunc) { g.PATCH("/items/:id", h) }, http.StatusOK},
			{"DELETE", func(g *DomainGroup, h gin.HandlerFunc) { g.DELETE("/items/:id", h) }, http.StatusOK},
		}

		for _, tt := range tests {
			t.Run(tt.method, func(t *testing.T) {
				engine := gin.New()
				g := NewDomainGroup("test", "/test")
				tt.register(g, func(c *gin.Context) {
					c.String(http.StatusOK, c.Param("id"))
				})

				g.RegisterRoutes(engine.Group("/api/v1"))

				req := httptest.NewRequest(tt.method, "/api/v1/test/items/123", nil)
				w := httptest.NewRecorder()
				engine.ServeHTTP(w, req)

				assert.Equal(t, tt.expectedCode, w.Code)
				assert.Equal(t, "123", w.Body.String())
			})
		}
	})

	t.Run("group middleware runs before handlers", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Set("from_middleware", "yes")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString("from_middleware"))
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		req := httptest.NewRequest("GET", "/api/v1/test/items", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "yes", w.Body.String())
	})

	t.Run("chained registration returns same group", func(t *testing.T) {
		g := NewDomainGroup("test", "/test").
			GET("/a", func(c *gin.Context) {}).
			POST("/b", func(c *gin.Context) {})

		assert.Len(t, g.routes, 2)
	})
}

// Static segments and path parameters coexist under the same prefix,
// mirroring how the compliance group registers /documents/expiring-soon
// next to /documents/:id.
func TestStaticSiblingOfParam(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("compliance", "/compliance")
	g.GET("/documents/expiring-soon", func(c *gin.Context) {
		c.String(http.StatusOK, "expiring")
	})
	g.GET("/documents/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})

	g.RegisterRoutes(engine.Group("/api/v1"))

	req := httptest.NewRequest("GET", "/api/v1/compliance/documents/expiring-soon", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "expiring", w.Body.String())

	req = httptest.NewRequest("GET", "/api/v1/compliance/documents/abc", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}
