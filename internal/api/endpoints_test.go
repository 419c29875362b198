package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/core/ports"
)

type recordingCaller struct {
	requests []Request
	body     []byte
	err      error
}

func (c *recordingCaller) Call(_ context.Context, req Request) ([]byte, error) {
	c.requests = append(c.requests, req)
	return c.body, c.err
}

func (c *recordingCaller) last(t *testing.T) Request {
	t.Helper()
	if len(c.requests) != 1 {
		t.Fatalf("expected exactly one call, got %d", len(c.requests))
	}
	return c.requests[0]
}

func TestUserClient_CreateRating(t *testing.T) {
	c := &recordingCaller{body: []byte(`{"message":"ok"}`)}
	if err := NewUserClient(c).CreateRating(context.Background(), 7, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := c.last(t)
	if req.Method != http.MethodPost || req.Path != "/user/ratings" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	payload, _ := json.Marshal(req.Body)
	if string(payload) != `{"store_id":7,"rating":4}` {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestUserClient_UpdateRating(t *testing.T) {
	c := &recordingCaller{body: []byte(`{}`)}
	if err := NewUserClient(c).UpdateRating(context.Background(), 7, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := c.last(t)
	if req.Method != http.MethodPatch || req.Path != "/user/ratings/7" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	payload, _ := json.Marshal(req.Body)
	if string(payload) != `{"rating":2}` {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestUserClient_StoresDecodesLooseNumbers(t *testing.T) {
	c := &recordingCaller{body: []byte(`[
		{"id":7,"name":"Corner Cafe","overall_rating":"4.5","rating_count":"2","user_rating":4},
		{"id":8,"name":"Book Nook","overall_rating":null,"rating_count":0,"user_rating":null}
	]`)}
	stores, err := NewUserClient(c).Stores(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.last(t).Query.Get("search"); got != "" {
		t.Fatalf("expected empty search, got %q", got)
	}
	if _, ok := c.requests[0].Query["search"]; !ok {
		t.Fatal("expected search parameter to be sent")
	}
	if len(stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(stores))
	}
	if stores[0].OverallRating.Value != 4.5 || stores[0].RatingCount != 2 || *stores[0].UserRating != 4 {
		t.Fatalf("unexpected first store %+v", stores[0])
	}
	if stores[1].OverallRating.Valid || stores[1].UserRating != nil {
		t.Fatalf("unexpected second store %+v", stores[1])
	}
}

func TestUserClient_NullListIsEmpty(t *testing.T) {
	c := &recordingCaller{body: []byte(`null`)}
	stores, err := NewUserClient(c).Stores(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stores == nil || len(stores) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", stores)
	}
}

func TestAdminClient_UsersFilterQuery(t *testing.T) {
	c := &recordingCaller{body: []byte(`[]`)}
	_, err := NewAdminClient(c).Users(context.Background(), domain.UserFilter{
		Name:   "Ann",
		Role:   domain.RoleOwner,
		SortBy: "name",
		Order:  "asc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := c.last(t).Query.Encode()
	want := "name=Ann&order=asc&role=owner&sortBy=name"
	if got != want {
		t.Fatalf("expected query %q, got %q", want, got)
	}
}

func TestAdminClient_UserDetailPath(t *testing.T) {
	c := &recordingCaller{body: []byte(`{"id":3,"name":"Ann","email":"a@x.io","role":"owner","rating":"3.7"}`)}
	detail, err := NewAdminClient(c).User(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.last(t).Path != "/admin/users/3" {
		t.Fatalf("unexpected path %q", c.requests[0].Path)
	}
	if detail.Role != domain.RoleOwner || detail.Rating.String() != "3.7" {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestAuthClient_MalformedBodyIsServerFailure(t *testing.T) {
	c := &recordingCaller{body: []byte(`<html>`)}
	_, err := NewAuthClient(c).Login(context.Background(), ports.LoginInput{Email: "a@b.c", Password: "x"})
	if !errors.Is(err, domain.ErrServer) {
		t.Fatalf("expected server failure, got %v", err)
	}
}

func TestAuthClient_PropagatesFailure(t *testing.T) {
	want := &domain.Failure{Kind: domain.FailureValidation, Status: 400, Message: "Invalid credentials"}
	c := &recordingCaller{err: want}
	_, err := NewAuthClient(c).Login(context.Background(), ports.LoginInput{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if f, _ := domain.AsFailure(err); f != want {
		t.Fatal("expected the gateway failure to be returned as is")
	}
}

func TestAdminClient_AddUserAcceptsWrappedBody(t *testing.T) {
	for _, body := range []string{
		`{"id":9,"name":"Olivia Owner of the Corner","email":"o@x.io","role":"owner"}`,
		`{"message":"User created","user":{"id":9,"name":"Olivia Owner of the Corner","email":"o@x.io","role":"owner"}}`,
	} {
		c := &recordingCaller{body: []byte(body)}
		u, err := NewAdminClient(c).AddUser(context.Background(), domain.NewUser{Role: domain.RoleOwner})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.ID != 9 || u.Role != domain.RoleOwner {
			t.Fatalf("unexpected user %+v from %s", u, body)
		}
	}
}
