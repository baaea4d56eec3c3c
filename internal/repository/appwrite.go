package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tagihin/backend/internal/domain"
)

// AppwriteConfig holds the connection settings for an Appwrite database.
type AppwriteConfig struct {
	Endpoint     string // e.g. https://cloud.appwrite.io/v1
	ProjectID    string
	APIKey       string
	DatabaseID   string
	CollectionID string
}

// AppwriteProfileStore keeps profiles as documents in an Appwrite
// collection, queried on the userId attribute.
type AppwriteProfileStore struct {
	cfg    AppwriteConfig
	client *http.Client
}

func NewAppwriteProfileStore(cfg AppwriteConfig) *AppwriteProfileStore {
	return &AppwriteProfileStore{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// appwriteDocument mirrors the document shape stored in the profiles
// collection.
type appwriteDocument struct {
	ID              string    `json:"$id,omitempty"`
	UserID          string    `json:"userId"`
	Plan            string    `json:"plan"`
	PremiumUntil    time.Time `json:"premiumUntil"`
	WAReminderCount int       `json:"waReminderCount"`
	WAResetDate     time.Time `json:"waResetDate"`
}

type appwriteDocumentList struct {
	Total     int                `json:"total"`
	Documents []appwriteDocument `json:"documents"`
}

func (s *AppwriteProfileStore) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query, err := json.Marshal(map[string]any{
		"method":    "equal",
		"attribute": "userId",
		"values":    []string{userID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	path := s.documentsPath() + "?queries[]=" + url.QueryEscape(string(query))
	var list appwriteDocumentList
	if err := s.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}

	if len(list.Documents) == 0 {
		return nil, nil // no profile yet
	}
	doc := list.Documents[0]
	return &domain.Profile{
		ID:              doc.ID,
		UserID:          doc.UserID,
		Plan:            doc.Plan,
		PremiumUntil:    doc.PremiumUntil,
		WAReminderCount: doc.WAReminderCount,
		WAResetDate:     doc.WAResetDate,
	}, nil
}

func (s *AppwriteProfileStore) Create(ctx context.Context, p *domain.Profile) error {
	body := map[string]any{
		"documentId": p.ID,
		"data": appwriteDocument{
			UserID:          p.UserID,
			Plan:            p.Plan,
			PremiumUntil:    p.PremiumUntil,
			WAReminderCount: p.WAReminderCount,
			WAResetDate:     p.WAResetDate,
		},
	}
	return s.do(ctx, http.MethodPost, s.documentsPath(), body, nil)
}

func (s *AppwriteProfileStore) Update(ctx context.Context, id string, p *domain.Profile) error {
	// Partial update: waResetDate and userId are deliberately not sent.
	body := map[string]any{
		"data": map[string]any{
			"plan":            p.Plan,
			"premiumUntil":    p.PremiumUntil,
			"waReminderCount": p.WAReminderCount,
		},
	}
	return s.do(ctx, http.MethodPatch, s.documentsPath()+"/"+url.PathEscape(id), body, nil)
}

func (s *AppwriteProfileStore) Ping(ctx context.Context) error {
	return s.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (s *AppwriteProfileStore) documentsPath() string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents",
		url.PathEscape(s.cfg.DatabaseID), url.PathEscape(s.cfg.CollectionID))
}

// do performs one request against the Appwrite REST API and decodes the
// response into out when given.
func (s *AppwriteProfileStore) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.Endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Appwrite-Project", s.cfg.ProjectID)
	req.Header.Set("X-Appwrite-Key", s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("appwrite request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("appwrite returned %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode appwrite response: %w", err)
		}
	}
	return nil
}
