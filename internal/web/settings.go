package web

import (
	"errors"
	"io/ioutil"
	"matchplay/internal/util"
	"net/http"
)

func (s *Server) getSettings(w http.ResponseWriter, _ *http.Request) {
	settings, err := s.back.GetSettings()
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, settings)
}

func (s *Server) patchSettings(w http.ResponseWriter, r *http.Request) {
	patch, err := ioutil.ReadAll(r.Body)
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	settings, err := s.back.PatchSettings(patch)
	if errors.Is(err, util.ErrPublic("")) {
		s.response(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, settings)
}
