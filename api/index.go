// Package handler is the serverless entrypoint for the tour desk API.
package handler

import (
	"net/http"
	"sync"

	"tourdesk/config"
	"tourdesk/di"
	"tourdesk/shared/logger"
	httpTransport "tourdesk/transport/http"
)

var (
	once   sync.Once
	server *httpTransport.HTTP
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
