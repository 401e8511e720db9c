package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cgmd/internal/models"
	"cgmd/internal/services"
)

func patientList() []models.PatientSummary {
	return []models.PatientSummary{
		{ID: "c-1", PatientID: "p-123", FirstName: "Jane"},
		{ID: "c-2", PatientID: "p-456", FirstName: "John"},
	}
}

func TestResolvePatient_Found(t *testing.T) {
	p, err := services.ResolvePatient(patientList(), "p-456")
	require.NoError(t, err)
	assert.Equal(t, "John", p.FirstName)
}

func TestResolvePatient_NotFound(t *testing.T) {
	_, err := services.ResolvePatient(patientList(), "p-999")
	assert.ErrorIs(t, err, services.ErrPatientNotFound)
}

func TestResolvePatient_EmptyList(t *testing.T) {
	_, err := services.ResolvePatient(nil, "p-123")
	assert.ErrorIs(t, err, services.ErrPatientNotFound)
}

func TestResolvePatient_Idempotent(t *testing.T) {
	list := patientList()
	first, err1 := services.ResolvePatient(list, "p-123")
	second, err2 := services.ResolvePatient(list, "p-123")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}
