package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pfrederiksen/contest-digest/internal/calendar"
	"github.com/pfrederiksen/contest-digest/internal/contest"
	"github.com/pfrederiksen/contest-digest/internal/digest"
	"github.com/pfrederiksen/contest-digest/internal/filter"
	"github.com/pfrederiksen/contest-digest/internal/logger"
)

// schedule fetches the current schedule and narrows it by ?platform= and ?name=.
// The returned status is 500 when the aggregator had nothing to fall back on.
func (s *Server) schedule(w http.ResponseWriter, r *http.Request) (*contest.Schedule, int, bool) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, 0, false
	}

	sched, err := s.source.Current(r.Context())
	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
		logger.Error("Serving failed schedule", logger.Fields{"request_id": RequestIDFrom(r.Context())}, err)
	}
	if sched == nil {
		sched = contest.NewSchedule(time.Now())
		if err != nil {
			sched = sched.WithError(err.Error())
		}
	}

	return f.Apply(sched), status, true
}

func filterFromQuery(r *http.Request) (*filter.Filter, error) {
	f := filter.NewFilter()
	q := r.URL.Query()

	for _, v := range q["platform"] {
		platforms, err := filter.ParsePlatforms(strings.Split(v, ","))
		if err != nil {
			return nil, err
		}
		f.Platforms = append(f.Platforms, platforms...)
	}
	for _, v := range q["name"] {
		if v = strings.TrimSpace(v); v != "" {
			f.Names = append(f.Names, v)
		}
	}
	return f, nil
}

func (s *Server) handleContestsJSON(w http.ResponseWriter, r *http.Request) {
	sched, status, ok := s.schedule(w, r)
	if !ok {
		return
	}
	writeJSON(w, status, sched)
}

func (s *Server) handleContestsText(w http.ResponseWriter, r *http.Request) {
	sched, status, ok := s.schedule(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, digest.Format(sched))
}

func (s *Server) handleContestsICS(w http.ResponseWriter, r *http.Request) {
	sched, status, ok := s.schedule(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="contests.ics"`)
	w.WriteHeader(status)
	fmt.Fprint(w, calendar.Generate(sched, calendar.Options{Location: s.opts.Location}))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	state := s.source.Cache().State()
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"cache":  state.String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Encoding response", nil, err)
	}
}
