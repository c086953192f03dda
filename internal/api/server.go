package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guardian/internal/app"
	"guardian/internal/domain"
	"guardian/internal/httpx"
	"guardian/internal/services/challenges"
	"guardian/internal/services/contacts"
)

// Server exposes a Wire over HTTP.
type Server struct {
	wire *app.Wire
}

// NewServer returns a server for w.
func NewServer(w *app.Wire) *Server { return &Server{wire: w} }

// Router returns the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/state", s.state).Methods(http.MethodGet)
	r.HandleFunc("/session", s.setSession).Methods(http.MethodPut)
	r.HandleFunc("/session/toggle", s.toggleSession).Methods(http.MethodPost)
	r.HandleFunc("/sos", s.sos).Methods(http.MethodPost)

	r.HandleFunc("/contacts", s.listContacts).Methods(http.MethodGet)
	r.HandleFunc("/contacts", s.addContact).Methods(http.MethodPost)
	r.HandleFunc("/contacts/{index:[0-9]+}", s.removeContact).Methods(http.MethodDelete)

	r.HandleFunc("/monitors/{name}/{op:start|stop}", s.monitor).Methods(http.MethodPost)
	r.HandleFunc("/heartbeat/measure", s.measureHeartbeat).Methods(http.MethodPost)

	r.HandleFunc("/police", s.policeOptions).Methods(http.MethodGet)
	r.HandleFunc("/police/{op:call|sms}", s.police).Methods(http.MethodPost)

	r.HandleFunc("/challenges", s.listChallenges).Methods(http.MethodGet)
	r.HandleFunc("/challenges", s.addChallenge).Methods(http.MethodPost)
	r.HandleFunc("/challenges/{id:[0-9]+}/toggle", s.toggleChallenge).Methods(http.MethodPost)
	r.HandleFunc("/challenges/{id:[0-9]+}", s.deleteChallenge).Methods(http.MethodDelete)

	r.HandleFunc("/notices", s.notices).Methods(http.MethodGet)
	r.HandleFunc("/simulate/fall", s.simulateFall).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.HandlerFor(s.wire.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.Use(httpx.AccessLog(s.wire.Logger.With("component", "api")))
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) state(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, s.wire.Session.State())
}

type sessionRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) setSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decode(w, r, &req) {
		return
	}
	s.wire.Session.SetEnabled(detach(r), req.Enabled)
	httpx.JSON(w, http.StatusOK, s.wire.Session.State())
}

func (s *Server) toggleSession(w http.ResponseWriter, r *http.Request) {
	s.wire.Session.Toggle(detach(r))
	httpx.JSON(w, http.StatusOK, s.wire.Session.State())
}

func (s *Server) sos(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, s.wire.SOS.Trigger(detach(r), domain.TriggerManual))
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	list, err := s.wire.Contacts.Contacts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

type contactRequest struct {
	Number string `json:"number"`
}

func (s *Server) addContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decode(w, r, &req) {
		return
	}
	added, err := s.wire.Contacts.Add(r.Context(), req.Number)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	list, err := s.wire.Contacts.Contacts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, status, map[string]any{"added": added, "contacts": list})
}

func (s *Server) removeContact(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid index")
		return
	}
	if err := s.wire.Contacts.Remove(r.Context(), index); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) monitor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var m domain.Monitor
	switch domain.MonitorName(vars["name"]) {
	case domain.MonitorFall:
		m = s.wire.Fall
	case domain.MonitorScream:
		m = s.wire.Scream
	case domain.MonitorHeartbeat:
		m = s.wire.Heartbeat
	default:
		httpx.Error(w, http.StatusNotFound, fmt.Sprintf("unknown monitor %q", vars["name"]))
		return
	}

	ctx := detach(r)
	var err error
	if vars["op"] == "start" {
		err = m.Start(ctx)
	} else {
		err = m.Stop(ctx)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s.wire.Session.State())
}

func (s *Server) measureHeartbeat(w http.ResponseWriter, r *http.Request) {
	st, err := s.wire.Heartbeat.Measure(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

func (s *Server) policeOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.wire.Police.Options(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, opts)
}

func (s *Server) police(w http.ResponseWriter, r *http.Request) {
	var (
		in  domain.Intent
		err error
	)
	if mux.Vars(r)["op"] == "call" {
		in, err = s.wire.Police.Call(r.Context())
	} else {
		in, err = s.wire.Police.SendLocation(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, in)
}

func (s *Server) listChallenges(w http.ResponseWriter, r *http.Request) {
	list, err := s.wire.Challenges.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"challenges": list, "allDone": domain.AllDone(list)})
}

type challengeRequest struct {
	Text string `json:"text"`
}

func (s *Server) addChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if !decode(w, r, &req) {
		return
	}
	c, added, err := s.wire.Challenges.Add(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	if !added {
		httpx.JSON(w, http.StatusOK, map[string]any{"added": false})
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"added": true, "challenge": c})
}

func (s *Server) toggleChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := challengeID(w, r)
	if !ok {
		return
	}
	allDone, err := s.wire.Challenges.Toggle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"allDone": allDone})
}

func (s *Server) deleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := challengeID(w, r)
	if !ok {
		return
	}
	if err := s.wire.Challenges.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) notices(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, s.wire.Notices.Notices())
}

func (s *Server) simulateFall(w http.ResponseWriter, _ *http.Request) {
	s.wire.Accelerometer.Drop()
	w.WriteHeader(http.StatusAccepted)
}

func challengeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// detach keeps request values but not cancellation, for work that outlives
// the request such as monitor callbacks.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrResourceUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, contacts.ErrContactIndex), errors.Is(err, challenges.ErrChallengeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	}
	httpx.Error(w, status, err.Error())
}
