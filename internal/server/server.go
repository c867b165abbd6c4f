package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"feedlog-cli/internal/model"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// New builds the records service handler on top of repo.
func New(repo Repo) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/records", func(rr chi.Router) {
		rr.Get("/", listRecordsHandler(repo))
		rr.Post("/", createRecordHandler(repo))
		rr.Put("/{recordID}", updateRecordHandler(repo))
		rr.Delete("/{recordID}", deleteRecordHandler(repo))
	})

	return r
}

type recordRequest struct {
	Timestamp time.Time `json:"timestamp"`
	Weight    float64   `json:"weight"`
	Animal    string    `json:"animal"`
}

type fieldError struct {
	Msg string `json:"msg"`
}

type errorResponse struct {
	Errors []fieldError `json:"errors"`
}

// validateRecord re-checks the record invariant server-side. Clients validate
// before submitting, but the service is the enforcement point of last resort.
func validateRecord(req recordRequest, now time.Time) []fieldError {
	var errs []fieldError
	if req.Timestamp.IsZero() {
		errs = append(errs, fieldError{Msg: "Timestamp is required."})
	} else if req.Timestamp.After(now) {
		errs = append(errs, fieldError{Msg: "Timestamp cannot be in the future."})
	}
	if req.Weight <= 0 {
		errs = append(errs, fieldError{Msg: "Weight must be a positive number."})
	} else if req.Weight > model.MaxWeightGrams {
		errs = append(errs, fieldError{Msg: fmt.Sprintf("Weight cannot exceed %d grams.", model.MaxWeightGrams)})
	}
	if !model.Animal(req.Animal).Valid() {
		errs = append(errs, fieldError{Msg: "Unknown animal type."})
	}
	return errs
}

func listRecordsHandler(repo Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := repo.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

func createRecordHandler(repo Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []fieldError{{Msg: "Invalid JSON body."}}})
			return
		}
		if errs := validateRecord(req, time.Now()); len(errs) > 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Errors: errs})
			return
		}

		rec := model.Record{
			ID:        uuid.NewString(),
			Timestamp: req.Timestamp.UTC(),
			Weight:    req.Weight,
			Animal:    model.Animal(req.Animal),
		}
		if err := repo.Create(r.Context(), rec); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func updateRecordHandler(repo Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "recordID")

		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []fieldError{{Msg: "Invalid JSON body."}}})
			return
		}
		if errs := validateRecord(req, time.Now()); len(errs) > 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Errors: errs})
			return
		}

		rec := model.Record{
			ID:        id,
			Timestamp: req.Timestamp.UTC(),
			Weight:    req.Weight,
			Animal:    model.Animal(req.Animal),
		}
		switch err := repo.Update(r.Context(), rec); {
		case errors.Is(err, ErrNotFound):
			http.Error(w, "record not found", http.StatusNotFound)
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		default:
			writeJSON(w, http.StatusOK, rec)
		}
	}
}

func deleteRecordHandler(repo Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "recordID")
		switch err := repo.Delete(r.Context(), id); {
		case errors.Is(err, ErrNotFound):
			http.Error(w, "record not found", http.StatusNotFound)
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
