package service_test

import (
	"context"
	"testing"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/repository/postgres"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/service"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAssignmentService_AssignSeries(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	assignmentService := service.NewAssignmentService(repos.Assignment, repos.Patient, repos.Series, zap.NewNop())
	ctx := context.Background()

	patient := testutil.NewPatientBuilder().Build(t, testDB.DB)
	series := testutil.NewSeriesBuilder().Build(t, testDB.DB)

	tests := []struct {
		name      string
		patientID uuid.UUID
		seriesID  uuid.UUID
		wantErr   error
	}{
		{
			name:      "successful assignment",
			patientID: patient.ID,
			seriesID:  series.ID,
		},
		{
			name:      "unknown patient",
			patientID: uuid.New(),
			seriesID:  series.ID,
			wantErr:   domain.ErrPatientNotFound,
		},
		{
			name:      "unknown series",
			patientID: patient.ID,
			seriesID:  uuid.New(),
			wantErr:   domain.ErrSeriesNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignment, err := assignmentService.AssignSeries(ctx, tt.patientID, tt.seriesID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, assignment.IsActive)
			assert.Equal(t, tt.seriesID, assignment.SeriesID)
			assert.Equal(t, 0, assignment.CompletedSessions)
		})
	}
}

func TestAssignmentService_ReassignDeactivatesPrevious(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	assignmentService := service.NewAssignmentService(repos.Assignment, repos.Patient, repos.Series, zap.NewNop())
	ctx := context.Background()

	patient := testutil.NewPatientBuilder().Build(t, testDB.DB)
	first := testutil.NewSeriesBuilder().Build(t, testDB.DB)
	second := testutil.NewSeriesBuilder().Build(t, testDB.DB)

	_, err := assignmentService.AssignSeries(ctx, patient.ID, first.ID)
	require.NoError(t, err)
	_, err = assignmentService.AssignSeries(ctx, patient.ID, second.ID)
	require.NoError(t, err)

	active, err := assignmentService.ActiveForPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.SeriesID)

	// Exactly one active row ever exists per patient
	history, err := assignmentService.HistoryForPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	activeCount := 0
	for _, a := range history {
		if a.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestAssignmentService_ActiveForPatientNone(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	assignmentService := service.NewAssignmentService(repos.Assignment, repos.Patient, repos.Series, zap.NewNop())
	ctx := context.Background()

	patient := testutil.NewPatientBuilder().Build(t, testDB.DB)

	_, err := assignmentService.ActiveForPatient(ctx, patient.ID)
	assert.ErrorIs(t, err, domain.ErrNoActiveAssignment)
}
