package service

import (
	"context"
	"courtside_backend/internal/config"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newGradingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *GradingService) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	svc := NewGradingService(config.GradingConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	})
	return srv, svc
}

func TestGradeSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq GradingRequest
	_, svc := newGradingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"isCorrect":    true,
			"pointsEarned": 7.5,
		})
	})

	res, err := svc.Grade(context.Background(), GradingRequest{
		QuestionText:    "Serve mechanics",
		QuestionContent: "Describe the toss.",
		UserAnswer:      "Toss slightly in front, fully extend.",
		MaxPoints:       10,
	})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect || res.PointsEarned != 7.5 {
		t.Fatalf("result = %+v, want correct with 7.5 points", res)
	}
	if gotPath != "/grade" {
		t.Fatalf("path = %q, want /grade", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotReq.MaxPoints != 10 {
		t.Fatalf("forwarded maxPoints = %v, want 10", gotReq.MaxPoints)
	}
}

func TestGradeNon2xxStatus(t *testing.T) {
	_, svc := newGradingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	if _, err := svc.Grade(context.Background(), GradingRequest{}); err == nil {
		t.Fatal("expected an error for a 503 response")
	}
}

func TestGradeMalformedBody(t *testing.T) {
	_, svc := newGradingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	if _, err := svc.Grade(context.Background(), GradingRequest{}); err == nil {
		t.Fatal("expected an error for a non-JSON body")
	}
}

func TestGradeMissingFieldsRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"only isCorrect", `{"isCorrect":true}`},
		{"only pointsEarned", `{"pointsEarned":3}`},
		{"negative points", `{"isCorrect":true,"pointsEarned":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, svc := newGradingServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			if _, err := svc.Grade(context.Background(), GradingRequest{}); err == nil {
				t.Fatalf("body %s should be rejected", tt.body)
			}
		})
	}
}

func TestGradeUnreachableService(t *testing.T) {
	svc := NewGradingService(config.GradingConfig{
		BaseURL:        "http://127.0.0.1:1",
		TimeoutSeconds: 1,
	})
	if _, err := svc.Grade(context.Background(), GradingRequest{}); err == nil {
		t.Fatal("expected a transport error")
	}
}
