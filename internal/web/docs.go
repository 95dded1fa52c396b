package web

import (
	"net/http"
	"time"

	"github.com/russross/blackfriday/v2"
)

// ratingDocs is what lands on the index page, it explains the figures the API
// returns so people stop asking why their rating moved by 0.2.
const ratingDocs = `
# Matchplay ratings

This service records singles match results and keeps one skill rating per
player. A rating predicts the share of games you should win: two equally
rated players are expected to split games 50/50.

## How a match moves your rating

* **actual** — the share of games you actually won.
* **expected** — the share the rating gap predicted, via a logistic curve.
* **delta** — ` + "`K × (actual − expected)`" + `, applied to you and negated
  for your opponent. Zero-sum, always.

New players move faster: the K factor starts doubled and settles down over
your first matches. Matches below the minimum game count are too short to
mean anything and are not recorded.

## Formats

* **Timed** — play until the clock runs out, report the final game counts.
* **One set** — first to the target (win by the margin), deuce rules past it.

See ` + "`GET /v1/formats`" + ` for the configured list.
`

func (s *Server) getDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.cache(w, "public", 1*time.Hour)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(blackfriday.Run([]byte(ratingDocs))); err != nil {
		s.error(w, err, http.StatusInternalServerError)
	}
}
