package poller

import (
	"context"
	"time"

	"cgmd/internal/models"
	"cgmd/internal/providers"
	"cgmd/internal/services"
	"cgmd/internal/structures"
)

type StreamState string

const (
	StateStreaming    StreamState = "streaming"
	StateNotAvailable StreamState = "notAvailable"
)

// Emission is one tick's output: either a reading or an explicit
// not-available signal. Never an error — failures degrade to NotAvailable.
type Emission struct {
	State   StreamState     `json:"state"`
	Reading *models.Reading `json:"reading,omitempty"`
	At      time.Time       `json:"at"`
}

// Tick outcome labels for metrics.
const (
	outcomeStreaming          = "streaming"
	outcomeMissingCredentials = "missing_credentials"
	outcomeNoPatientSelected  = "no_patient_selected"
	outcomeAuthError          = "auth_error"
	outcomeNetworkError       = "network_error"
	outcomePatientNotFound    = "patient_not_found"
)

type EngineInterface interface {
	// Tick runs one authenticate-resolve-emit cycle against the latest
	// preferences snapshot.
	Tick(ctx context.Context) Emission
	Interval() time.Duration
}

type Engine struct {
	conf    *structures.Config
	prefs   providers.PreferencesProviderInterface
	auth    services.AuthServiceInterface
	glucose services.GlucoseServiceInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewEngine(conf *structures.Config, prefs providers.PreferencesProviderInterface, auth services.AuthServiceInterface, glucose services.GlucoseServiceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) EngineInterface {
	return &Engine{
		conf:    conf,
		prefs:   prefs,
		auth:    auth,
		glucose: glucose,
		logger:  logger,
		metrics: metrics,
	}
}

func (e *Engine) Interval() time.Duration {
	return e.conf.Poller.Interval
}

func (e *Engine) notAvailable(outcome string) Emission {
	e.metrics.IncTicksTotal(outcome)
	return Emission{State: StateNotAvailable, At: time.Now()}
}

// Tick re-reads the preferences snapshot every invocation, so credential or
// patient-selection changes land on the next tick without resubscription.
// Every failure degrades the emission to NotAvailable; nothing escapes the
// tick boundary.
func (e *Engine) Tick(ctx context.Context) Emission {
	prefs := e.prefs.Snapshot()

	creds := prefs.Credentials()
	if !creds.Complete() {
		e.logger.Debugf(providers.TypePoll, "credentials not configured, skipping tick")
		return e.notAvailable(outcomeMissingCredentials)
	}
	if prefs.PatientID == "" {
		e.logger.Debugf(providers.TypePoll, "no patient selected, skipping tick")
		return e.notAvailable(outcomeNoPatientSelected)
	}

	session, refreshed, err := e.auth.EnsureValidSession(ctx, prefs.Session(), creds)
	if err != nil {
		e.logger.Warnf(providers.TypePoll, "authentication failed: %s", err)
		return e.notAvailable(outcomeAuthError)
	}
	if refreshed {
		// Session writes go through the configuration source, never
		// directly into shared state.
		if err := e.prefs.UpdateSession(session.Token, session.ExpiresAt, session.AccountIDHash); err != nil {
			e.logger.Errorf(providers.TypePoll, "failed to persist refreshed session: %s", err)
		}
	}

	patients, err := e.glucose.Patients(ctx, session)
	if err != nil {
		e.logger.Warnf(providers.TypePoll, "listing patients failed: %s", err)
		return e.notAvailable(outcomeNetworkError)
	}

	patient, err := services.ResolvePatient(patients, prefs.PatientID)
	if err != nil {
		e.logger.Warnf(providers.TypePoll, "patient %s not in connection list", prefs.PatientID)
		return e.notAvailable(outcomePatientNotFound)
	}

	reading := patient.Latest
	e.metrics.IncTicksTotal(outcomeStreaming)
	e.metrics.SetLastReading(reading.ValueMgDl)
	e.logger.Debugf(providers.TypePoll, "emitting reading %.0f mg/dL %s", reading.ValueMgDl, reading.Trend)

	return Emission{State: StateStreaming, Reading: &reading, At: time.Now()}
}
