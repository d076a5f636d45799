package notify

import "net/http"

// SetupRoutes wires the notification-side HTTP routes: health check,
// account registration, and the events subscription endpoint.
func SetupRoutes(hub *Hub, reg Registrar) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", HealthHandler)
	mux.HandleFunc("/register", RegisterHandler(reg))
	mux.HandleFunc("/events", EventsHandler(hub))
	return mux
}
