package http

import nethttp "net/http"

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/teams", get(handler.Teams))
	mux.HandleFunc("/teams/toggle", post(handler.ToggleTeam))
	mux.HandleFunc("/session", get(handler.Session))
	mux.HandleFunc("/session/pair", post(handler.SelectPair))
	mux.HandleFunc("/session/duration", post(handler.SetDuration))
	mux.HandleFunc("/session/start", post(handler.StartMatch))
	mux.HandleFunc("/session/goal", post(handler.RecordGoal))
	mux.HandleFunc("/session/goal/revoke", post(handler.RevokeGoal))
	mux.HandleFunc("/session/pause", post(handler.TogglePause))
	mux.HandleFunc("/session/tiebreak", post(handler.ResolveTieBreak))
	mux.HandleFunc("/session/next", post(handler.NextMatch))
	mux.HandleFunc("/session/quit", post(handler.QuitSession))
	mux.HandleFunc("/history", handler.History)
	mux.HandleFunc("/stats", get(handler.Stats))
	return mux
}

func get(next nethttp.HandlerFunc) nethttp.HandlerFunc {
	return allow(nethttp.MethodGet, next)
}

func post(next nethttp.HandlerFunc) nethttp.HandlerFunc {
	return allow(nethttp.MethodPost, next)
}

func allow(method string, next nethttp.HandlerFunc) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
