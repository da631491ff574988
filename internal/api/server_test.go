package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kwpid/HighCard-V2/internal/game"
	"github.com/kwpid/HighCard-V2/internal/progression"
	"github.com/kwpid/HighCard-V2/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Service) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "api-test.db")
	cfg := storage.DefaultConfig(dbPath)
	cfg.AutoMigrate = true

	db, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := storage.NewService(db)
	return NewServer(DefaultConfig(), store), store
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestGetProfileReturnsDefault(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/profiles/alice/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data progression.Profile `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Data.Level != 1 {
		t.Errorf("expected level 1 default profile, got %d", body.Data.Level)
	}
}

func TestEquipTitle(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	profile := progression.NewProfile("bob")
	progression.GrantTitle(&profile, progression.Title{
		ID: "rookie", Name: "Rookie", Type: progression.TitleTypeLevel,
	})
	if err := store.Profiles().Save(ctx, "bob", profile); err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/profiles/bob/equip", `{"title_id":"rookie"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	loaded, err := store.Profiles().Load(ctx, "bob", "bob")
	if err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	if loaded.EquippedTitleID != "rookie" {
		t.Errorf("expected equipped title rookie, got %q", loaded.EquippedTitleID)
	}
}

func TestEquipUnownedTitleRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/profiles/carol/equip", `{"title_id":"nope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unowned title, got %d", rec.Code)
	}
}

func TestGetRecentMatchesAndStats(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	profile := progression.NewProfile("dave")
	base := time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC)
	for i, won := range []bool{true, true, false} {
		err := store.RecordMatch(ctx, storage.MatchRecord{
			UserID:     "dave",
			GameType:   string(game.GameType1v1),
			Won:        won,
			Team1Score: 10,
			Team2Score: 5,
			PlayedAt:   base.Add(time.Duration(i) * time.Hour),
		}, profile)
		if err != nil {
			t.Fatalf("RecordMatch failed: %v", err)
		}
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/matches/dave/recent?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var recent struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &recent); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(recent.Data) != 2 {
		t.Errorf("expected 2 matches, got %d", len(recent.Data))
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/matches/dave/stats?game_type=1v1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var statsResp struct {
		Data struct {
			Total int `json:"total"`
			Wins  int `json:"wins"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &statsResp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if statsResp.Data.Total != 3 || statsResp.Data.Wins != 2 {
		t.Errorf("unexpected stats: %+v", statsResp.Data)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/matches/dave/streaks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var streaksResp struct {
		Data struct {
			Current string `json:"current"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &streaksResp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if streaksResp.Data.Current != "1 loss streak" {
		t.Errorf("expected current streak %q, got %q", "1 loss streak", streaksResp.Data.Current)
	}
}

func TestGetMMRChart(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	profile := progression.NewProfile("erin")
	profile.Ranked[game.GameType1v1] = &progression.RankedProfile{
		MMR: 480, PeakMMR: 480, PlacementMatches: 5,
	}
	mmr := 480
	err := store.RecordMatch(ctx, storage.MatchRecord{
		UserID:   "erin",
		GameType: string(game.GameType1v1),
		Ranked:   true,
		Won:      true,
		MMRAfter: &mmr,
		PlayedAt: time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC),
	}, profile)
	if err != nil {
		t.Fatalf("RecordMatch failed: %v", err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/mmr/erin/chart?game_type=1v1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "echarts") {
		t.Error("expected rendered chart markup in response body")
	}
}

func TestGetMMRTimelineNotFoundWhenEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/mmr/nobody/timeline", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for empty history, got %d", rec.Code)
	}
}

func TestBadGameTypeRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/mmr/alice/history?game_type=3v3", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown game type, got %d", rec.Code)
	}
}

func TestContentTypeEnforced(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/alice/equip", strings.NewReader(`{"title_id":""}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415 for wrong content type, got %d", rec.Code)
	}
}
