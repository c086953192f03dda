package intent

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"guardian/internal/domain"
	"guardian/internal/httpx"
)

type ackRequest struct {
	Count int `json:"count"`
}

// Bridge is an in-memory per-device intent queue served over HTTP.
type Bridge struct {
	mu     sync.Mutex
	queues map[string][]domain.Intent
	logger *slog.Logger
}

// NewBridge returns an empty bridge.
func NewBridge(logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{queues: make(map[string][]domain.Intent), logger: logger}
}

// Handler returns the bridge's HTTP routes wrapped in an access log.
func (b *Bridge) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/devices/{device}/intents", b.enqueue).Methods(http.MethodPost)
	r.HandleFunc("/devices/{device}/intents", b.list).Methods(http.MethodGet)
	r.HandleFunc("/devices/{device}/intents/ack", b.ack).Methods(http.MethodPost)
	r.Use(httpx.AccessLog(b.logger))
	return r
}

// Pending returns a copy of the queue for device.
func (b *Bridge) Pending(device string) []domain.Intent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Intent(nil), b.queues[device]...)
}

func (b *Bridge) enqueue(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var in domain.Intent
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if in.URI == "" {
		http.Error(w, "uri required", http.StatusBadRequest)
		return
	}
	device := mux.Vars(r)["device"]
	b.mu.Lock()
	b.queues[device] = append(b.queues[device], in)
	b.mu.Unlock()
	w.WriteHeader(http.StatusAccepted)
}

func (b *Bridge) list(w http.ResponseWriter, r *http.Request) {
	device := mux.Vars(r)["device"]
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	b.mu.Lock()
	q := b.queues[device]
	if limit == 0 || limit > len(q) {
		limit = len(q)
	}
	out := append([]domain.Intent{}, q[:limit]...)
	b.mu.Unlock()

	httpx.JSON(w, http.StatusOK, out)
}

func (b *Bridge) ack(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req ackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Count < 0 {
		http.Error(w, "invalid ack", http.StatusBadRequest)
		return
	}
	device := mux.Vars(r)["device"]

	b.mu.Lock()
	q := b.queues[device]
	if req.Count >= len(q) {
		delete(b.queues, device)
	} else {
		b.queues[device] = append([]domain.Intent(nil), q[req.Count:]...)
	}
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
