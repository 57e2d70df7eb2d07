package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRESTCompleterSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Economize no **mercado**."},{"text":"ignored"}]}}]}`))
	}))
	defer srv.Close()

	c := NewRESTCompleter(srv.URL+"/", "secret-key", "gemini-2.0-flash")
	got, err := c.Complete(context.Background(), "Onde posso economizar?")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "Economize no **mercado**." {
		t.Errorf("Complete() = %q", got)
	}
	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret-key" {
		t.Errorf("key = %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 || gotBody.Contents[0].Parts[0].Text != "Onde posso economizar?" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestRESTCompleterFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":"boom"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %v, want *APIError", err)
				}
				if apiErr.StatusCode != 500 || apiErr.Body != `{"error":"boom"}` {
					t.Errorf("APIError = %+v", apiErr)
				}
			},
		},
		{
			name:   "no candidates",
			status: http.StatusOK,
			body:   `{"candidates":[]}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrEmptyResponse) {
					t.Errorf("error = %v, want ErrEmptyResponse", err)
				}
			},
		},
		{
			name:   "no parts",
			status: http.StatusOK,
			body:   `{"candidates":[{"content":{"parts":[]}}]}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrEmptyResponse) {
					t.Errorf("error = %v, want ErrEmptyResponse", err)
				}
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `not json`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if err == nil || errors.Is(err, ErrEmptyResponse) || errors.As(err, &apiErr) {
					t.Errorf("error = %v, want a decode error", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRESTCompleter(srv.URL, "k", "m").Complete(context.Background(), "p")
			tt.check(t, err)
		})
	}
}

func TestRESTCompleterTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewRESTCompleter(url, "k", "m").Complete(context.Background(), "p")
	if err == nil {
		t.Fatal("Complete() against a closed server should fail")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) || errors.Is(err, ErrEmptyResponse) {
		t.Errorf("error = %v, want a transport error", err)
	}
}
