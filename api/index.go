package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"tripplanner/config"
	"tripplanner/di"
	"tripplanner/shared/logger"
	"tripplanner/transport/http/response"
)

var (
	initOnce sync.Once
	routes   http.Handler
	initErr  error
)

// Handler serves the API as a single serverless function. The service is
// built on the first invocation and reused by warm instances.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	initOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		server, err := di.InitializeService()
		if err != nil {
			initErr = err

			return
		}

		routes = server.Handler()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		response.WithError(w, initErr)

		return
	}

	routes.ServeHTTP(w, r)
}
