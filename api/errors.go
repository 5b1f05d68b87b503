package api

import (
	"errors"
	"net/http"

	"libraminds/domain/services"

	log "github.com/sirupsen/logrus"
)

var (
	errInvalidCategoryID = errors.New("invalid category_id parameter")
	errInvalidStatus     = errors.New("status must be pending or approved")
	errInvalidFilter     = errors.New("filter must be available or overdue")
)

// apiError is the wire form of a failed request
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorStatus maps each business-rule failure to an HTTP status and a stable
// machine-readable code.
var errorStatus = map[error]struct {
	status int
	code   string
}{
	services.ErrUserNotFound:             {http.StatusNotFound, "user_not_found"},
	services.ErrBookNotFound:             {http.StatusNotFound, "book_not_found"},
	services.ErrCategoryNotFound:         {http.StatusNotFound, "category_not_found"},
	services.ErrBookUnavailable:          {http.StatusConflict, "book_unavailable"},
	services.ErrNotEligible:              {http.StatusForbidden, "not_eligible"},
	services.ErrOutstandingFines:         {http.StatusForbidden, "outstanding_fines"},
	services.ErrBorrowLimitReached:       {http.StatusForbidden, "borrow_limit_reached"},
	services.ErrNotBorrowed:              {http.StatusConflict, "not_borrowed"},
	services.ErrReservationNotApplicable: {http.StatusConflict, "reservation_not_applicable"},
	services.ErrSelfReservation:          {http.StatusConflict, "self_reservation"},
	services.ErrAlreadyReserved:          {http.StatusConflict, "already_reserved"},
	services.ErrReservationsNotPermitted: {http.StatusForbidden, "reservations_not_permitted"},
	services.ErrReservationLimitReached:  {http.StatusForbidden, "reservation_limit_reached"},
	services.ErrNotReserved:              {http.StatusConflict, "not_reserved"},
	services.ErrInvalidAmount:            {http.StatusUnprocessableEntity, "invalid_amount"},
	services.ErrInsufficientFunds:        {http.StatusForbidden, "insufficient_funds"},
	services.ErrInvalidTier:              {http.StatusUnprocessableEntity, "invalid_tier"},
	services.ErrCategoryNotApproved:      {http.StatusUnprocessableEntity, "category_not_approved"},
	services.ErrInvalidRating:            {http.StatusUnprocessableEntity, "invalid_rating"},
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	data := envelope{"error": apiError{Code: code, Message: message}}
	if err := s.writeJSON(w, status, data); err != nil {
		s.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) logError(r *http.Request, err error) {
	log.WithFields(log.Fields{
		"method": r.Method,
		"url":    r.URL.String(),
	}).WithError(err).Error("Request failed")
}

// serviceErrorResponse translates a service-layer error into the wire form.
// Unrecognized errors are treated as internal failures.
func (s *Server) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	for sentinel, mapping := range errorStatus {
		if errors.Is(err, sentinel) {
			s.errorResponse(w, r, mapping.status, mapping.code, sentinel.Error())
			return
		}
	}
	s.serverErrorResponse(w, r, err)
}

func (s *Server) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	s.errorResponse(w, r, http.StatusInternalServerError, "internal_error",
		"the server encountered a problem and could not process your request")
}

func (s *Server) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.errorResponse(w, r, http.StatusBadRequest, "bad_request", err.Error())
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, r, http.StatusNotFound, "not_found", "the requested resource could not be found")
}

func (s *Server) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, r, http.StatusMethodNotAllowed, "method_not_allowed",
		"the "+r.Method+" method is not supported for this resource")
}

func (s *Server) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, r, http.StatusTooManyRequests, "rate_limit_exceeded", "rate limit exceeded")
}
