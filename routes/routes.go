package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kidstats/kidstats-server/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	childHandler *handlers.ChildHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	gameHandler *handlers.GameHandler,
	liveGameHandler *handlers.LiveGameHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/children", func(r chi.Router) {
		r.Post("/", childHandler.CreateChild)
		r.Get("/", childHandler.ListChildren)
		r.Get("/default", childHandler.GetDefaultChild)
		r.Get("/{childID}", childHandler.GetChildByID)
		r.Patch("/{childID}", childHandler.UpdateChild)
		r.Delete("/{childID}", childHandler.DeleteChild)
		r.Get("/{childID}/players", childHandler.ListChildPlayers)
		r.Get("/{childID}/career", childHandler.GetCareerStats)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Post("/", teamHandler.CreateTeam)
		r.Get("/", teamHandler.ListTeams)
		r.Get("/{teamID}", teamHandler.GetTeamByID)
		r.Patch("/{teamID}", teamHandler.UpdateTeam)
		r.Post("/{teamID}/deactivate", teamHandler.DeactivateTeam)
		r.Get("/{teamID}/players", teamHandler.ListTeamPlayers)
		r.Get("/{teamID}/games", teamHandler.ListTeamGames)
	})

	router.Route("/players", func(r chi.Router) {
		r.Post("/", playerHandler.CreatePlayer)
		r.Get("/{playerID}", playerHandler.GetPlayerByID)
		r.Patch("/{playerID}", playerHandler.UpdatePlayer)
		r.Delete("/{playerID}", playerHandler.DeletePlayer)
	})

	router.Route("/games", func(r chi.Router) {
		r.Post("/", gameHandler.CreateGame)
		r.Get("/{gameID}", gameHandler.GetGameByID)
		r.Patch("/{gameID}", gameHandler.UpdateGame)
		r.Get("/{gameID}/summary", gameHandler.GetGameSummary)
		r.Get("/{gameID}/score", gameHandler.GetGameScore)
		r.Get("/{gameID}/events", gameHandler.ListGameEvents)

		r.Route("/{gameID}/live", func(r chi.Router) {
			r.Post("/start", liveGameHandler.StartSession)
			r.Get("/", liveGameHandler.GetSession)
			r.Post("/stats", liveGameHandler.RecordStat)
			r.Post("/team-score", liveGameHandler.RecordTeammateScore)
			r.Post("/opponent-score", liveGameHandler.RecordOpponentScore)
			r.Post("/undo", liveGameHandler.UndoLastAction)
			r.Post("/end", liveGameHandler.EndGame)
			r.Get("/players/{playerID}/stats", liveGameHandler.GetPlayerStats)
		})
	})

	router.Get("/ws/games/{gameID}", webSocketHandler.ServeWs)
}
