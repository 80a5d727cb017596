package sqlerr

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fkhayef/chirp/pkg/response"
)

// Respond classifies err and writes the matching error response. Server-side
// failures are logged with the request logger; the client only sees a
// generic message for them.
func Respond(w http.ResponseWriter, r *http.Request, err error, entity string) {
	e := Classify(err, entity)

	if e.Status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("entity", entity).Msg("store operation failed")
	} else {
		zerolog.Ctx(r.Context()).Debug().Err(err).Str("code", e.Code).Msg("store rejected request")
	}

	response.Error(w, e.Status, e.Code, e.Message)
}
