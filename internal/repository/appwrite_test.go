package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tagihin/backend/internal/domain"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *AppwriteProfileStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAppwriteProfileStore(AppwriteConfig{
		Endpoint:     srv.URL,
		ProjectID:    "proj",
		APIKey:       "key",
		DatabaseID:   "db",
		CollectionID: "user_profiles",
	})
}

func TestAppwriteFindByUserID(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if !strings.HasPrefix(r.URL.Path, "/databases/db/collections/user_profiles/documents") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Appwrite-Project") != "proj" || r.Header.Get("X-Appwrite-Key") != "key" {
			t.Error("missing appwrite auth headers")
		}

		query := r.URL.Query().Get("queries[]")
		var q map[string]any
		if err := json.Unmarshal([]byte(query), &q); err != nil {
			t.Fatalf("query is not JSON: %q", query)
		}
		if q["method"] != "equal" || q["attribute"] != "userId" {
			t.Errorf("unexpected query %v", q)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"total": 1,
			"documents": []map[string]any{{
				"$id":             "doc-1",
				"userId":          "u123",
				"plan":            "premium",
				"premiumUntil":    "2024-04-14T10:30:00Z",
				"waReminderCount": 2,
				"waResetDate":     "2024-04-01T00:00:00Z",
			}},
		})
	})

	p, err := store.FindByUserID(context.Background(), "u123")
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if p == nil {
		t.Fatal("expected a profile")
	}
	if p.ID != "doc-1" || p.UserID != "u123" || p.Plan != "premium" || p.WAReminderCount != 2 {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.WAResetDate.Day() != 1 {
		t.Errorf("unexpected waResetDate: %s", p.WAResetDate)
	}
}

func TestAppwriteFindByUserIDNoMatch(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"total": 0, "documents": []any{}})
	})

	p, err := store.FindByUserID(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil profile, got %+v", p)
	}
}

func TestAppwriteCreate(t *testing.T) {
	var body map[string]json.RawMessage
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	})

	err := store.Create(context.Background(), &domain.Profile{
		ID:              "doc-9",
		UserID:          "u9",
		Plan:            domain.PlanPremium,
		PremiumUntil:    time.Now().Add(domain.PremiumPeriod),
		WAReminderCount: 0,
		WAResetDate:     domain.NextMonthStart(time.Now()),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var docID string
	json.Unmarshal(body["documentId"], &docID)
	if docID != "doc-9" {
		t.Errorf("got documentId %q", docID)
	}
	var data map[string]any
	json.Unmarshal(body["data"], &data)
	for _, field := range []string{"userId", "plan", "premiumUntil", "waReminderCount", "waResetDate"} {
		if _, ok := data[field]; !ok {
			t.Errorf("create data missing %s", field)
		}
	}
}

func TestAppwriteUpdateOmitsProtectedFields(t *testing.T) {
	var body map[string]json.RawMessage
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("unexpected method %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/documents/doc-1") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)
		w.Write([]byte(`{}`))
	})

	err := store.Update(context.Background(), "doc-1", &domain.Profile{
		ID:              "doc-1",
		UserID:          "u1",
		Plan:            domain.PlanPremium,
		PremiumUntil:    time.Now().Add(domain.PremiumPeriod),
		WAReminderCount: 0,
		WAResetDate:     domain.NextMonthStart(time.Now()),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var data map[string]any
	json.Unmarshal(body["data"], &data)
	for _, field := range []string{"plan", "premiumUntil", "waReminderCount"} {
		if _, ok := data[field]; !ok {
			t.Errorf("update data missing %s", field)
		}
	}
	for _, field := range []string{"waResetDate", "userId"} {
		if _, ok := data[field]; ok {
			t.Errorf("update data must not contain %s", field)
		}
	}
}

func TestAppwriteErrorResponse(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	})

	_, err := store.FindByUserID(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error on non-2xx response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should carry upstream status: %v", err)
	}
}
