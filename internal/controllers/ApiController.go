package controllers

import (
	"context"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"cgmd/internal/libreview"
	"cgmd/internal/models"
	"cgmd/internal/poller"
	"cgmd/internal/providers"
	"cgmd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	auth    services.AuthServiceInterface
	glucose services.GlucoseServiceInterface
	prefs   providers.PreferencesProviderInterface
	stream  poller.StreamInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, auth services.AuthServiceInterface, glucose services.GlucoseServiceInterface, prefs providers.PreferencesProviderInterface, stream poller.StreamInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		auth:    auth,
		glucose: glucose,
		prefs:   prefs,
		stream:  stream,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps the error taxonomy onto HTTP statuses. The settings flow
// is the only surface that sees vendor auth messages.
func writeError(w http.ResponseWriter, err error) {
	var authErr *libreview.AuthError
	switch {
	case errors.As(err, &authErr):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": authErr.Message})
	case errors.Is(err, services.ErrMissingCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrPatientNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "vendor request failed"})
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (interface{}, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// session resolves a valid session from the current preferences snapshot,
// persisting it when a refresh happened.
func (ac *ApiController) session(ctx context.Context) (models.Session, error) {
	prefs := ac.prefs.Snapshot()
	session, refreshed, err := ac.auth.EnsureValidSession(ctx, prefs.Session(), prefs.Credentials())
	if err != nil {
		return models.Session{}, err
	}
	if refreshed {
		if err := ac.prefs.UpdateSession(session.Token, session.ExpiresAt, session.AccountIDHash); err != nil {
			ac.logger.Errorf(providers.TypeApp, "failed to persist refreshed session: %s", err)
		}
	}
	return session, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Patients []models.PatientSummary `json:"patients"`
}

// Login runs the settings flow: authenticate, persist credentials and
// session, then return the patient list for selection.
func (ac *ApiController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	creds := models.Credentials{Email: payload.Email, Password: payload.Password}
	if !creds.Complete() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	session, err := ac.auth.Login(r.Context(), creds)
	if err != nil {
		ac.logger.Warnf(providers.TypeApp, "login failed: %s", err)
		writeError(w, err)
		return
	}

	if err := ac.prefs.UpdateCredentials(creds.Email, creds.Password); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := ac.prefs.UpdateSession(session.Token, session.ExpiresAt, session.AccountIDHash); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	patients, err := ac.glucose.Patients(r.Context(), session)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Patients: patients})
}

type selectPatientRequest struct {
	PatientID string `json:"patientId"`
}

func (ac *ApiController) SelectPatient(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload selectPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.PatientID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.prefs.UpdatePatientID(payload.PatientID); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := ac.prefs.Clear(); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGlucose serves the latest engine emission. Before the first tick
// completes it reports notAvailable rather than an error.
func (ac *ApiController) GetGlucose(w http.ResponseWriter, r *http.Request) {
	emission := ac.stream.LastEmission()
	if emission == nil {
		writeJSON(w, http.StatusOK, poller.Emission{State: poller.StateNotAvailable})
		return
	}
	writeJSON(w, http.StatusOK, emission)
}

func (ac *ApiController) GetPatients(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "patients", func() (interface{}, error) {
		session, err := ac.session(r.Context())
		if err != nil {
			return nil, err
		}
		return ac.glucose.Patients(r.Context(), session)
	})
}

func (ac *ApiController) selectedPatientID(r *http.Request) string {
	if id := r.URL.Query().Get("patientId"); id != "" {
		return id
	}
	return ac.prefs.Snapshot().PatientID
}

func (ac *ApiController) GetHistory(w http.ResponseWriter, r *http.Request) {
	patientID := ac.selectedPatientID(r)
	if patientID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no patient selected"})
		return
	}
	ac.serveFromCacheOrCompute(w, "history:"+patientID, func() (interface{}, error) {
		session, err := ac.session(r.Context())
		if err != nil {
			return nil, err
		}
		return ac.glucose.History(r.Context(), session, patientID)
	})
}

func (ac *ApiController) GetLogbook(w http.ResponseWriter, r *http.Request) {
	patientID := ac.selectedPatientID(r)
	if patientID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no patient selected"})
		return
	}
	ac.serveFromCacheOrCompute(w, "logbook:"+patientID, func() (interface{}, error) {
		session, err := ac.session(r.Context())
		if err != nil {
			return nil, err
		}
		return ac.glucose.Logbook(r.Context(), session, patientID)
	})
}
