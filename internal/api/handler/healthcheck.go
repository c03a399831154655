package handler

import (
	"net/http"
	"time"
)

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, r, okResponse{"time": time.Now().UTC().Format(time.RFC3339)})
	})
}
