package handler

import (
	"folio/config"
	"folio/di"
	"folio/shared/logger"
	"net/http"
	"sync"
)

// app is built on the first invocation and reused while the function instance stays warm.
var app = sync.OnceValue(func() http.Handler {
	logger.InitLogger()
	logger.SetLogLevel(config.Get())

	return di.InitializeService()
})

// Handler is the serverless entrypoint.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	app().ServeHTTP(w, r)
}
