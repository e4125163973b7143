package e2etests

import (
	"bytes"
	"capsight_backend/domain"
	deckController "capsight_backend/internal/deck/controller"
	deckRepository "capsight_backend/internal/deck/repository"
	deckUsecase "capsight_backend/internal/deck/usecase"
	"capsight_backend/internal/service/config"
	"capsight_backend/internal/service/database"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/service/middleware"
	"context"
	"encoding/json"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"net/http"
	"net/http/httptest"
	"testing"
)

func setupTestDB(t *testing.T) *gorm.DB {
	_ = godotenv.Load("../../../.env")
	cfg, err := config.Load("TEST_")
	require.NoError(t, err)
	if cfg.DB.Host == "" {
		t.Skip("TEST_DB_HOST is not set")
	}

	db, err := database.Connect(cfg.DB)
	require.NoError(t, err)
	require.NoError(t, database.CreateTables(context.Background(), db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, company string) domain.User {
	user := domain.User{Name: name, CompanyName: company}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func cleanupUser(t *testing.T, db *gorm.DB, userID uint) {
	assert.NoError(t, db.Where("user_id = ?", userID).Delete(&domain.DeckRow{}).Error)
	assert.NoError(t, db.Where("id = ?", userID).Delete(&domain.User{}).Error)
}

func newTestServer(db *gorm.DB) *httptest.Server {
	repo := deckRepository.NewDeckRepository(db)
	uc := deckUsecase.NewDeckUsecase(repo)
	handler := deckController.NewDeckHandler(uc)

	router := mux.NewRouter()
	api := "/api"

	router.HandleFunc(api+"/deck", handler.ListRecentDecks).Methods("GET")
	router.HandleFunc(api+"/deck", handler.CreateDeck).Methods("POST")
	router.HandleFunc(api+"/deck/user/{user_id}", handler.GetDecksByUser).Methods("GET")
	router.HandleFunc(api+"/deck/{deck_id}", handler.GetDeck).Methods("GET")
	router.Use(middleware.RequestIDMiddleware)

	return httptest.NewServer(router)
}

func deckPayload(userID uint, filename string, overall int) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"user_id":   userID,
		"filename":  filename,
		"timestamp": "2024-01-01T00:00:00Z",
		"verdict":   "Invest",
		"scores": map[string]int{
			"overall": overall, "problem": 75, "solution": 80, "market": 65, "product": 72,
			"business_model": 60, "competition": 55, "team": 85, "financials": 50, "presentation": 78,
		},
		"strengths":  []string{"strong team", "clear market"},
		"weaknesses": []string{"no revenue"},
		"red_flags":  []string{},
	})
	return body
}

func getJSON(t *testing.T, url string, out interface{}) int {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestDeckRoundTripE2E(t *testing.T) {
	db := setupTestDB(t)

	err := logger.InitLoggers(t.TempDir())
	require.NoError(t, err)
	defer func() {
		_ = logger.SyncLoggers()
	}()

	user := createTestUser(t, db, "Ada", "Acme")
	defer cleanupUser(t, db, user.ID)

	server := newTestServer(db)
	defer server.Close()

	var empty []domain.Deck
	status := getJSON(t, fmt.Sprintf("%s/api/deck/user/%d", server.URL, user.ID), &empty)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, empty)

	resp, err := http.Post(server.URL+"/api/deck", "application/json", bytes.NewReader(deckPayload(user.ID, "pitch.pdf", 70)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Deck
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, user.ID, created.UserID)

	var fetched domain.Deck
	status = getJSON(t, fmt.Sprintf("%s/api/deck/%d", server.URL, created.ID), &fetched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, fetched)
	assert.Equal(t, 60, fetched.Scores.BusinessModel)
	assert.Equal(t, []string{"strong team", "clear market"}, fetched.Strengths)
	assert.Equal(t, []string{}, fetched.RedFlags)

	resp2, err := http.Post(server.URL+"/api/deck", "application/json", bytes.NewReader(deckPayload(user.ID, "pitch-v2.pdf", 82)))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusCreated, resp2.StatusCode)

	var decks []domain.Deck
	status = getJSON(t, fmt.Sprintf("%s/api/deck/user/%d", server.URL, user.ID), &decks)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, decks, 2)
	assert.Equal(t, "pitch.pdf", decks[0].Filename)
	assert.Equal(t, "pitch-v2.pdf", decks[1].Filename)

	var recent []domain.DeckSummary
	status = getJSON(t, server.URL+"/api/deck", &recent)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, recent)
	assert.LessOrEqual(t, len(recent), 10)
	assert.Equal(t, decks[1].ID, recent[0].ID)
	assert.Equal(t, 82, recent[0].Overall)

	status = getJSON(t, fmt.Sprintf("%s/api/deck/%d", server.URL, created.ID+1_000_000), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateDeckUnknownUserE2E(t *testing.T) {
	db := setupTestDB(t)

	err := logger.InitLoggers(t.TempDir())
	require.NoError(t, err)
	defer func() {
		_ = logger.SyncLoggers()
	}()

	server := newTestServer(db)
	defer server.Close()

	var maxID uint
	require.NoError(t, db.Model(&domain.User{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error)
	missing := maxID + 1000

	resp, err := http.Post(server.URL+"/api/deck", "application/json", bytes.NewReader(deckPayload(missing, "ghost.pdf", 10)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&domain.DeckRow{}).Where("user_id = ?", missing).Count(&count).Error)
	assert.Zero(t, count)
}
