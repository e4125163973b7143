package router

import (
	"encoding/json"
	"net/http"

	deck "capsight_backend/internal/deck/controller"
	user "capsight_backend/internal/user/controller"
	"github.com/gorilla/mux"
)

const serviceName = "capsightai-backend"

func SetUpRoutes(userHandler *user.UserHandler, deckHandler *deck.DeckHandler) *mux.Router {
	router := mux.NewRouter()
	api := "/api"

	router.HandleFunc("/", healthCheck).Methods("GET") // Liveness probe

	router.HandleFunc(api+"/deck", deckHandler.ListRecentDecks).Methods("GET")               // Latest deck summaries
	router.HandleFunc(api+"/deck", deckHandler.CreateDeck).Methods("POST")                   // Store analysed deck
	router.HandleFunc(api+"/deck/user/{user_id}", deckHandler.GetDecksByUser).Methods("GET") // All decks of a user
	router.HandleFunc(api+"/deck/{deck_id}", deckHandler.GetDeck).Methods("GET")             // Deck by id

	router.HandleFunc(api+"/user", userHandler.CreateUser).Methods("POST")       // Register user
	router.HandleFunc(api+"/user/{user_id}", userHandler.GetUser).Methods("GET") // User by id

	router.NotFoundHandler = http.HandlerFunc(notFound)
	return router
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Route not found"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
