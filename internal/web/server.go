package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"matchplay/internal/back"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"golang.org/x/time/rate"
)

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/", s.getDocs)

	// The v1 is a hacky, quick'n dirty implementation, with no pagination
	// nor any fancy stuff.
	r.Get("/v1/players", s.getPlayers)
	r.Post("/v1/players", s.admin(s.postPlayer))
	r.Get("/v1/player/{id}", s.getPlayer)
	r.Patch("/v1/player/{id}/active", s.admin(s.patchPlayerActive))
	r.Get("/v1/formats", s.getFormats)
	r.Post("/v1/formats", s.admin(s.postFormat))
	r.Get("/v1/leaderboard", s.getLeaderboard)
	r.Get("/v1/matches", s.getMatches)
	r.Post("/v1/matches", s.postMatch)
	r.Get("/v1/settings", s.getSettings)
	r.Patch("/v1/settings", s.admin(s.patchSettings))

	return r
}

type Server struct {
	http       *http.Server
	back       *back.Back
	adminToken string

	// One burst of phone-mashing is fine, sustained submission spam is not.
	submitLimiter *rate.Limiter
}

func NewServer(back *back.Back, listen, adminToken string) *Server {
	s := &Server{
		back:          back,
		adminToken:    adminToken,
		submitLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}

	s.http = &http.Server{
		Addr:         listen,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s
}

func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Println("info: starting HTTP server")
	wg.Add(1)
	defer wg.Done()

	go func() {
		err := s.http.ListenAndServe()
		if err == http.ErrServerClosed {
			log.Println("info: HTTP server closed")
			return
		}

		log.Fatalf("webserver crashed: %s", err)
	}()

	<-done
	if err := s.http.Close(); err != nil {
		log.Printf("warning: unable to close webserver: %s", err)
	}
}

func (s *Server) response(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(data)
	if err != nil {
		log.Printf("error: unable to marshal response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(response); err != nil {
		log.Printf("error: unable to send response: %s", err)
	}
}

func (s *Server) error(w http.ResponseWriter, err error, code int) {
	log.Printf("error: %s", err)
	w.WriteHeader(code)
}

// submissionError maps a SubmitMatch failure to the right status: rule
// rejections are the caller's fault and tell them which rule failed, unknown
// IDs are 404, anything else is on us.
func (s *Server) submissionError(w http.ResponseWriter, err error) {
	var rule back.RuleError
	if errors.As(err, &rule) {
		s.response(w, http.StatusBadRequest, map[string]string{
			"code":  rule.Code,
			"error": rule.Reason,
		})
		return
	}

	if errors.Is(err, sql.ErrNoRows) {
		s.error(w, err, http.StatusNotFound)
		return
	}

	s.error(w, err, http.StatusInternalServerError)
}

func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" ||
			r.Header.Get("Authorization") != "Bearer "+s.adminToken {
			s.error(w, errors.New("bad admin token"), http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

func (s *Server) cache(w http.ResponseWriter, scope string, d time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("%s,max-age=%d", scope, d/time.Second))
}
