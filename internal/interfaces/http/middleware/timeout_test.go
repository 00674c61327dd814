// internal/interfaces/http/middleware/timeout_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutPassesFastRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Timeout(time.Second))
	router.GET("/fast", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestTimeoutAnswers408(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handlerDone := make(chan struct{})
	router := gin.New()
	router.Use(Timeout(10 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		defer close(handlerDone)
		time.Sleep(100 * time.Millisecond)
		// A late write from the handler must not reach the client
		c.JSON(http.StatusOK, gin.H{"message": "too late"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	select {
	case <-handlerDone:
	case <-time.After(time.Second):
		t.Fatal("handler did not finish")
	}

	require.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.JSONEq(t, `{"error":"Request timeout"}`, w.Body.String())
}
