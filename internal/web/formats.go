package web

import (
	"encoding/json"
	"errors"
	"matchplay/internal/back"
	"matchplay/internal/util"
	"net/http"
	"time"
)

func (s *Server) getFormats(w http.ResponseWriter, _ *http.Request) {
	formats, err := s.back.ListFormats()
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.cache(w, "public", 5*time.Minute)
	s.response(w, http.StatusOK, map[string]interface{}{
		"formats": formats,
	})
}

func (s *Server) postFormat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		ShortCode   string `json:"shortCode"`
		Kind        string `json:"kind"`
		TargetGames int    `json:"targetGames"`
		WinBy       int    `json:"winBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	var format back.MatchFormat
	switch req.Kind {
	case "TIMED":
		format = back.NewTimedFormat(req.Name, req.ShortCode)
	case "ONE_SET":
		format = back.NewOneSetFormat(req.Name, req.ShortCode, req.TargetGames, req.WinBy)
	default:
		s.response(w, http.StatusBadRequest, map[string]string{
			"error": "kind must be TIMED or ONE_SET",
		})
		return
	}

	if err := s.back.CreateFormat(format); err != nil {
		if errors.Is(err, util.ErrPublic("")) {
			s.response(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusCreated, format)
}
