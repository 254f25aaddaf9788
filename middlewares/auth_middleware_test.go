package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.MustGet("userID"), "email": c.GetString("email")})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter("s3cret")
	good, err := utils.GenerateJWT("s3cret", 9, "ann@example.com", time.Hour)
	require.NoError(t, err)
	forged, err := utils.GenerateJWT("other", 9, "ann@example.com", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"not bearer", "Token " + good, "", http.StatusUnauthorized},
		{"bad signature", "Bearer " + forged, "", http.StatusUnauthorized},
		{"header", "Bearer " + good, "", http.StatusOK},
		{"query token", "", "?token=" + good, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.JSONEq(t, `{"userID":9,"email":"ann@example.com"}`, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_NoSecret(t *testing.T) {
	r := newAuthRouter("")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
