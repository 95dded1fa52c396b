package web

import (
	"encoding/json"
	"errors"
	"matchplay/internal/util"
	"net/http"
)

func (s *Server) getMatches(w http.ResponseWriter, _ *http.Request) {
	matches, err := s.back.RecentMatches(30)
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
	})
}

type submitMatchRequest struct {
	PlayerAID util.UUIDAsBlob
	PlayerBID util.UUIDAsBlob
	FormatID  util.UUIDAsBlob
	GamesA    int
	GamesB    int
}

func (r *submitMatchRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		PlayerAID string `json:"playerAId"`
		PlayerBID string `json:"playerBId"`
		FormatID  string `json:"formatId"`
		GamesA    int    `json:"gamesA"`
		GamesB    int    `json:"gamesB"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if r.PlayerAID, err = util.ParseUUIDAsBlob(raw.PlayerAID); err != nil {
		return err
	}
	if r.PlayerBID, err = util.ParseUUIDAsBlob(raw.PlayerBID); err != nil {
		return err
	}
	if r.FormatID, err = util.ParseUUIDAsBlob(raw.FormatID); err != nil {
		return err
	}
	r.GamesA, r.GamesB = raw.GamesA, raw.GamesB

	return nil
}

func (s *Server) postMatch(w http.ResponseWriter, r *http.Request) {
	if !s.submitLimiter.Allow() {
		s.error(w, errors.New("submission rate limit hit"), http.StatusTooManyRequests)
		return
	}

	var req submitMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	result, err := s.back.SubmitMatch(
		req.PlayerAID, req.PlayerBID, req.FormatID,
		req.GamesA, req.GamesB,
	)
	if err != nil {
		s.submissionError(w, err)
		return
	}

	s.response(w, http.StatusCreated, result)
}
