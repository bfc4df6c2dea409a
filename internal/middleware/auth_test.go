package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"courtside_backend/internal/config"
	"courtside_backend/internal/model"
	"courtside_backend/internal/util"
	"courtside_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func authRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}
	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func issueToken(t *testing.T, secret string) string {
	t.Helper()
	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Email: "ana@example.com", Role: model.Student}
	token, err := util.GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func authedRequest(r *gin.Engine, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuthMiddlewareUsesReloadedSecret(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "old-secret-old-secret-old-secret", ExpireTime: time.Hour}}
	r := authRouter(t, cfg)

	oldToken := issueToken(t, cfg.JWT.Secret)
	if code := authedRequest(r, oldToken); code != http.StatusOK {
		t.Fatalf("status = %d, want 200 before reload", code)
	}

	newSecret := "new-secret-new-secret-new-secret"
	cfg.SetLiveJWT(config.JWTConfig{Secret: newSecret, ExpireTime: time.Hour})

	if code := authedRequest(r, oldToken); code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for token signed with the retired secret", code)
	}
	if code := authedRequest(r, issueToken(t, newSecret)); code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with the reloaded secret", code)
	}
}

// Reload swaps must be safe while requests are in flight; run under -race.
func TestAuthMiddlewareConcurrentReload(t *testing.T) {
	secretA := "secret-a-secret-a-secret-a-secret"
	secretB := "secret-b-secret-b-secret-b-secret"
	cfg := &config.Config{JWT: config.JWTConfig{Secret: secretA, ExpireTime: time.Hour}}
	r := authRouter(t, cfg)

	tokenA := issueToken(t, secretA)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				cfg.SetLiveJWT(config.JWTConfig{Secret: secretB, ExpireTime: time.Hour})
			} else {
				cfg.SetLiveJWT(config.JWTConfig{Secret: secretA, ExpireTime: time.Hour})
			}
		}
	}()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				code := authedRequest(r, tokenA)
				if code != http.StatusOK && code != http.StatusUnauthorized {
					t.Errorf("status = %d, want 200 or 401", code)
					return
				}
			}
		}()
	}
	wg.Wait()
	<-done
}
