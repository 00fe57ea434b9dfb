package main

import "net/http"

// healthCheckHandler godoc
//
//	@Summary		Health check
//	@Description	Reports version, environment and live browsing contexts
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Security		BasicAuth
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"status":            "ok",
		"env":               app.config.env,
		"version":           version,
		"storage":           app.config.storage.driver,
		"browsing_contexts": app.contexts.Len(),
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}
