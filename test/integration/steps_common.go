package integration

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"gantry/pkg/config"
	"gantry/pkg/dbstate"
	"gantry/pkg/history"
	"gantry/pkg/task"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc      *TestContext
	lastErr error
	hist    *history.Store
	runID   string
	seq     int
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Schema steps
	sc.Step(`^the appointment schema is migrated$`, s.theAppointmentSchemaIsMigrated)
	sc.Step(`^the appointments table is empty$`, s.theAppointmentsTableIsEmpty)
	sc.Step(`^the appointments table contains (\d+) seeded rows$`, s.theAppointmentsTableContainsSeededRows)
	sc.Step(`^I reset the database schema$`, s.iResetTheDatabaseSchema)
	sc.Step(`^the appointments table should exist$`, s.theAppointmentsTableShouldExist)
	sc.Step(`^the appointments table should contain (\d+) rows$`, s.theAppointmentsTableShouldContainRows)

	// Task steps
	sc.Step(`^I run the clean task without DATABASE_URL$`, s.iRunTheCleanTaskWithoutDatabaseURL)
	sc.Step(`^the command should fail with "([^"]*)"$`, s.theCommandShouldFailWith)
	sc.Step(`^I prune test data$`, s.iPruneTestData)
	sc.Step(`^data preservation is requested$`, s.dataPreservationIsRequested)

	// History steps
	sc.Step(`^the run history schema is ensured$`, s.theRunHistorySchemaIsEnsured)
	sc.Step(`^I record a "([^"]*)" event for stage "([^"]*)"$`, s.iRecordAnEventForStage)
	sc.Step(`^the run history should contain (\d+) events$`, s.theRunHistoryShouldContainEvents)
	sc.Step(`^the latest event for stage "([^"]*)" should have status "([^"]*)"$`, s.theLatestEventForStageShouldHaveStatus)

	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		_ = os.Unsetenv(dbstate.PreserveEnvVar)
		return ctx, err
	})
}

// Schema steps

func (s *StepsContext) theAppointmentSchemaIsMigrated() error {
	return dbstate.Up(s.tc.DatabaseURL)
}

func (s *StepsContext) theAppointmentsTableIsEmpty() error {
	_, err := s.tc.RawDB.Exec(`DELETE FROM appointments`)
	return err
}

func (s *StepsContext) theAppointmentsTableContainsSeededRows(count int) error {
	for i := 0; i < count; i++ {
		s.seq++
		_, err := s.tc.RawDB.Exec(`
			INSERT INTO appointments
				(appointment_id, doctor_id, patient_id, facility_id,
				 doctor_name, patient_name, appointment_date,
				 appointment_start_time, appointment_end_time,
				 purpose_of_visit, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			fmt.Sprintf("apt-%d-%d", time.Now().UnixNano(), s.seq),
			"doc-1", "pat-1", "fac-1",
			"Dr. Example", "Pat Example",
			"2026-08-26", "09:00", "09:30",
			"checkup", "SCHEDULED",
		)
		if err != nil {
			return fmt.Errorf("failed to seed appointment: %w", err)
		}
	}
	return nil
}

func (s *StepsContext) iResetTheDatabaseSchema() error {
	return dbstate.Reset(s.tc.DatabaseURL)
}

func (s *StepsContext) theAppointmentsTableShouldExist() error {
	var exists bool
	err := s.tc.RawDB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'appointments')`,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("appointments table does not exist")
	}
	return nil
}

func (s *StepsContext) theAppointmentsTableShouldContainRows(expected int) error {
	var count int
	if err := s.tc.RawDB.QueryRow(`SELECT count(*) FROM appointments`).Scan(&count); err != nil {
		return err
	}
	if count != expected {
		return fmt.Errorf("expected %d rows, found %d", expected, count)
	}
	return nil
}

// Task steps

func (s *StepsContext) iRunTheCleanTaskWithoutDatabaseURL() error {
	saved, had := os.LookupEnv("DATABASE_URL")
	_ = os.Unsetenv("DATABASE_URL")
	defer func() {
		if had {
			_ = os.Setenv("DATABASE_URL", saved)
		}
	}()

	runner := task.NewRunner(config.Get())
	s.lastErr = runner.Run(context.Background(), task.TaskClean)
	return nil
}

func (s *StepsContext) theCommandShouldFailWith(message string) error {
	if s.lastErr == nil {
		return fmt.Errorf("expected a failure containing %q, got success", message)
	}
	if !strings.Contains(s.lastErr.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, s.lastErr)
	}
	return nil
}

func (s *StepsContext) iPruneTestData() error {
	_, err := dbstate.PruneTestData(s.tc.DB)
	return err
}

func (s *StepsContext) dataPreservationIsRequested() error {
	return os.Setenv(dbstate.PreserveEnvVar, "1")
}

// History steps

func (s *StepsContext) theRunHistorySchemaIsEnsured() error {
	s.hist = history.NewStoreWithDB(s.tc.RawDB)
	s.runID = fmt.Sprintf("run-it-%d", time.Now().UnixNano())
	if err := s.hist.EnsureSchema(); err != nil {
		return err
	}
	_, err := s.tc.RawDB.Exec(`DELETE FROM run_events`)
	return err
}

func (s *StepsContext) iRecordAnEventForStage(status, stage string) error {
	return s.hist.Save(history.Event{
		RunID:    s.runID,
		Stage:    stage,
		Status:   status,
		Duration: time.Second,
		Detail:   map[string]string{"branch": "main"},
	})
}

func (s *StepsContext) theRunHistoryShouldContainEvents(expected int) error {
	var count int
	err := s.tc.RawDB.QueryRow(`SELECT count(*) FROM run_events WHERE run_id = $1`, s.runID).Scan(&count)
	if err != nil {
		return err
	}
	if count != expected {
		return fmt.Errorf("expected %d events, found %d", expected, count)
	}
	return nil
}

func (s *StepsContext) theLatestEventForStageShouldHaveStatus(stage, status string) error {
	var got string
	err := s.tc.RawDB.QueryRow(`
		SELECT status FROM run_events
		WHERE run_id = $1 AND stage = $2
		ORDER BY recorded_at DESC, id DESC LIMIT 1
	`, s.runID, stage).Scan(&got)
	if err != nil {
		return err
	}
	if got != status {
		return fmt.Errorf("expected status %q for stage %s, got %q", status, stage, got)
	}
	return nil
}
