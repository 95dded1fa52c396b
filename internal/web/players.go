package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"matchplay/internal/util"
	"net/http"
	"time"

	"github.com/go-chi/chi"
)

func (s *Server) getPlayers(w http.ResponseWriter, _ *http.Request) {
	players, err := s.back.ListPlayers()
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.response(w, http.StatusOK, map[string]interface{}{
		"players": players,
	})
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseUUIDAsBlob(chi.URLParam(r, "id"))
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	player, err := s.back.GetPlayer(id)
	if errors.Is(err, sql.ErrNoRows) {
		s.error(w, err, http.StatusNotFound)
		return
	}

	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, player)
}

func (s *Server) postPlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	player, err := s.back.RegisterPlayer(req.Name)
	if errors.Is(err, util.ErrPublic("")) {
		s.response(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusCreated, player)
}

func (s *Server) patchPlayerActive(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseUUIDAsBlob(chi.URLParam(r, "id"))
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	if err := s.back.SetPlayerActive(id, req.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.error(w, err, http.StatusNotFound)
			return
		}

		s.error(w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getLeaderboard(w http.ResponseWriter, _ *http.Request) {
	leaderboard, err := s.back.Leaderboard(50)
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.response(w, http.StatusOK, map[string]interface{}{
		"leaderboard": leaderboard,
	})
}
