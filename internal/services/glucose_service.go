package services

import (
	"context"
	"errors"

	"cgmd/internal/libreview"
	"cgmd/internal/models"
	"cgmd/internal/providers"
)

// ErrPatientNotFound means the selected patient is absent from the
// account's connection list. Common when connection sharing is revoked on
// the vendor side; self-heals once the user re-shares or reselects.
var ErrPatientNotFound = errors.New("selected patient not found in connection list")

type GlucoseServiceInterface interface {
	Patients(ctx context.Context, session models.Session) ([]models.PatientSummary, error)
	History(ctx context.Context, session models.Session, patientID string) (*libreview.GraphResult, error)
	Logbook(ctx context.Context, session models.Session, patientID string) ([]models.Reading, error)
}

type GlucoseService struct {
	client libreview.ClientInterface
	logger providers.Logger
}

func NewGlucoseService(client libreview.ClientInterface, logger providers.Logger) GlucoseServiceInterface {
	return &GlucoseService{client: client, logger: logger}
}

func (gs *GlucoseService) Patients(ctx context.Context, session models.Session) ([]models.PatientSummary, error) {
	return gs.client.ListPatients(ctx, session)
}

func (gs *GlucoseService) History(ctx context.Context, session models.Session, patientID string) (*libreview.GraphResult, error) {
	return gs.client.GetGraph(ctx, session, patientID)
}

func (gs *GlucoseService) Logbook(ctx context.Context, session models.Session, patientID string) ([]models.Reading, error) {
	return gs.client.GetLogbook(ctx, session, patientID)
}

// ResolvePatient maps the selected patient id to its live record. Pure
// function: same inputs always yield the same result.
func ResolvePatient(patients []models.PatientSummary, selectedID string) (*models.PatientSummary, error) {
	for i := range patients {
		if patients[i].PatientID == selectedID {
			return &patients[i], nil
		}
	}
	return nil, ErrPatientNotFound
}
