package timetable

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"guems-backend/lib/scrapers/icloudems"
	"guems-backend/lib/timezone"
	"guems-backend/pkg/response"
)

type statusResponse struct {
	response.Response
	Message string `json:"message,omitempty"`
}

type timetableResponse struct {
	response.Response
	Periods []Period `json:"periods"`
}

type setCredentialRequest struct {
	AdmissionNumber string `json:"admission_number"`
	Password        string `json:"password"`
}

// NewRouter exposes the service over JSON HTTP.
func NewRouter(service Service) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	pong := func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, statusResponse{Message: "pong"})
	}
	router.Get("/", pong)
	router.Get("/ping", pong)

	router.Post("/credentials", service.handleSetCredential)
	router.Get("/credentials", service.handleHasCredential)
	router.Delete("/credentials", service.handleDeleteCredential)

	router.Get("/timetable", service.handleCurrentPeriod)
	router.Get("/timetable/week", service.handleWeekTimetable)

	return router
}

func (s Service) handleSetCredential(w http.ResponseWriter, r *http.Request) {
	var req setCredentialRequest
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.BAD_REQUEST, "malformed request body"))
		return
	}

	existed, err := s.HasCredential(r.Context(), req.AdmissionNumber)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to look up credential"))
		return
	}

	err = s.SetCredential(r.Context(), req.AdmissionNumber, req.Password)
	switch {
	case errors.Is(err, ErrInvalidAdmissionNumber):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.BAD_REQUEST, err.Error()))
		return
	case errors.Is(err, icloudems.ErrInvalidCredentials):
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.INVALID_CREDENTIALS, err.Error()))
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "failed to set credential", "err", err)
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error(response.PORTAL_UNAVAILABLE, "could not verify credential against the portal"))
		return
	}

	if existed {
		render.JSON(w, r, statusResponse{Message: "Updated"})
	} else {
		render.JSON(w, r, statusResponse{Message: "Inserted"})
	}
}

func (s Service) handleHasCredential(w http.ResponseWriter, r *http.Request) {
	admissionNumber := r.URL.Query().Get("admission_number")

	found, err := s.HasCredential(r.Context(), admissionNumber)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to look up credential"))
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.NOT_FOUND, "no credential stored"))
		return
	}
	render.JSON(w, r, statusResponse{Message: "Found"})
}

func (s Service) handleDeleteCredential(w http.ResponseWriter, r *http.Request) {
	admissionNumber := r.URL.Query().Get("admission_number")

	err := s.DeleteCredential(r.Context(), admissionNumber)
	if errors.Is(err, ErrCredentialNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.NOT_FOUND, "no credential stored"))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to delete credential"))
		return
	}
	render.JSON(w, r, statusResponse{Message: "Deleted"})
}

func (s Service) handleCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	admissionNumber := r.URL.Query().Get("admission_number")
	if err := validateAdmissionNumber(admissionNumber); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.BAD_REQUEST, err.Error()))
		return
	}

	periods, err := s.CurrentPeriod(r.Context(), admissionNumber, timezone.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to resolve current period", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to resolve current period"))
		return
	}
	render.JSON(w, r, timetableResponse{Periods: periods})
}

func (s Service) handleWeekTimetable(w http.ResponseWriter, r *http.Request) {
	admissionNumber := r.URL.Query().Get("admission_number")
	if err := validateAdmissionNumber(admissionNumber); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.BAD_REQUEST, err.Error()))
		return
	}

	periods, err := s.Timetable(r.Context(), admissionNumber)
	if errors.Is(err, ErrCredentialNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.NOT_FOUND, "unknown student"))
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to query timetable", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to query timetable"))
		return
	}
	render.JSON(w, r, timetableResponse{Periods: periods})
}
