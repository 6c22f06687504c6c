package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	eventHandler *EventHandler,
	registrationHandler *RegistrationHandler,
	voteHandler *VoteHandler,
	userHandler *UserHandler,
	liveHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Route("/events", func(r chi.Router) {
			r.Post("/", eventHandler.CreateEvent)
			r.Get("/", eventHandler.ListEvents)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.GetEvent)
				r.Get("/ballots", eventHandler.ListBallots)

				r.Post("/nominees", registrationHandler.RegisterNominee)
				r.Get("/nominees", registrationHandler.ListNominees)
				r.Post("/nominees/{userID}/approval", registrationHandler.ApproveNominee)

				r.Post("/voters", registrationHandler.RegisterVoter)
				r.Get("/voters", registrationHandler.ListVoters)
				r.Get("/participation", registrationHandler.Participation)

				r.Post("/votes", voteHandler.CastVote)
				r.Get("/tally", voteHandler.GetTally)
				r.Get("/my-status", registrationHandler.MyStatus)
			})
		})

		r.Route("/me", func(r chi.Router) {
			r.Get("/", userHandler.GetMe)
			r.Get("/votes", voteHandler.MyHistory)
		})

		if liveHandler != nil {
			r.Handle("/live", liveHandler)
		}
	})

	return r
}
