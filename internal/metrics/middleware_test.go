package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCollector implements MetricsCollectorInterface for testing
type MockCollector struct {
	HTTPRequests  map[string]int
	HTTPDurations map[string][]float64
}

func NewMockCollector() *MockCollector {
	return &MockCollector{
		HTTPRequests:  make(map[string]int),
		HTTPDurations: make(map[string][]float64),
	}
}

func (m *MockCollector) RecordHTTPRequest(method, path string, status int) {
	key := method + ":" + path + ":" + strconv.Itoa(status)
	m.HTTPRequests[key]++
}

func (m *MockCollector) RecordHTTPDuration(method, path string, seconds float64) {
	key := method + ":" + path
	m.HTTPDurations[key] = append(m.HTTPDurations[key], seconds)
}

func TestMetricsMiddleware_RecordsHTTPMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	collector := NewMockCollector()

	router := gin.New()
	router.Use(MetricsMiddleware(collector))
	router.POST("/webhook", func(c *gin.Context) {
		time.Sleep(5 * time.Millisecond)
		c.String(http.StatusBadRequest, "Invalid action")
	})

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, collector.HTTPRequests["POST:/webhook:400"])

	durations := collector.HTTPDurations["POST:/webhook"]
	require.Len(t, durations, 1)
	assert.GreaterOrEqual(t, durations[0], 0.005)
}

func TestMetricsMiddleware_UnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	collector := NewMockCollector()

	router := gin.New()
	router.Use(MetricsMiddleware(collector))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/a", "/b/c", "/random"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, 3, collector.HTTPRequests["GET:unmatched:404"])
	assert.Len(t, collector.HTTPRequests, 1)
}
