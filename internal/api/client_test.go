package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["user_id"] != "alice" || body["password"] != "pw" {
			t.Errorf("body = %v", body)
		}
		json.NewEncoder(w).Encode(Identity{UserID: "alice", AccessToken: "tok"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	id, err := c.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if id.UserID != "alice" || id.AccessToken != "tok" {
		t.Errorf("identity = %+v", id)
	}
}

func TestLoginFailureCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid credentials"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if StatusOf(err) != http.StatusUnauthorized {
		t.Errorf("status = %d", StatusOf(err))
	}
	if DetailOf(err) != "Invalid credentials" {
		t.Errorf("detail = %q", DetailOf(err))
	}
}

func TestBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"articles":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok123"))
	if _, err := c.SavedArticles(context.Background(), "alice"); err != nil {
		t.Fatalf("SavedArticles: %v", err)
	}
}

func TestNewsByTopicQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news/technology" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("page_size") != "5" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"data":{"articles":[{"title":"A","url":"http://a"}],"page":2,"total_pages":3,"total":15}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	page, err := c.NewsByTopic(context.Background(), "technology", 2, 5)
	if err != nil {
		t.Fatalf("NewsByTopic: %v", err)
	}
	if page.Page != 2 || page.TotalPages != 3 || len(page.Articles) != 1 {
		t.Errorf("page = %+v", page)
	}
}

func TestGetRetriesTransportErrorsOnly(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, WithRetries(3))
	_, err := c.NewsByTopic(context.Background(), "tech", 1, 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if StatusOf(err) != http.StatusInternalServerError {
		t.Errorf("status = %d", StatusOf(err))
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times; status errors must not be retried", got)
	}
}

func TestSendInteractionNeverRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/interactions/add" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var ev Interaction
		json.NewDecoder(r.Body).Decode(&ev)
		if ev.InteractionType != "like" || ev.UserID != "alice" {
			t.Errorf("event = %+v", ev)
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Invalid interaction data."}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithRetries(5))
	err := c.SendInteraction(context.Background(), Interaction{
		UserID: "alice", ArticleID: "http://a", Topic: "tech",
		Keywords: []string{"news"}, InteractionType: "like",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestRecommendationsInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Recommendations(context.Background(), "alice")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestAdminHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("admin_key"); got != "secret" {
			t.Errorf("admin_key header = %q", got)
		}
		switch r.URL.Path {
		case "/admin/users":
			w.Write([]byte(`[{"user_id":"alice"}]`))
		case "/admin/cache/keys":
			w.Write([]byte(`{"cached_keys":["news:tech:1"]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	users, err := c.AdminUsers(context.Background(), "secret")
	if err != nil {
		t.Fatalf("AdminUsers: %v", err)
	}
	if len(users) != 1 || users[0]["user_id"] != "alice" {
		t.Errorf("users = %v", users)
	}

	keys, err := c.AdminCacheKeys(context.Background(), "secret")
	if err != nil {
		t.Fatalf("AdminCacheKeys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "news:tech:1" {
		t.Errorf("keys = %v", keys)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news/ai" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"articles":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	if _, err := c.NewsByTopic(context.Background(), "ai", 1, 5); err != nil {
		t.Fatalf("NewsByTopic: %v", err)
	}
}
