package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, api *API) {
	r.Route("/calculator/sessions", func(r chi.Router) {
		r.Post("/", api.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", api.GetSession)
			r.Delete("/", api.DeleteSession)
			r.Post("/intents", api.ApplyIntent)
			r.Post("/keys", api.PressKeys)
		})
	})
}
