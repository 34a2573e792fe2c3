package dbstate

import (
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"
)

// PreserveEnvVar controls per-test data isolation. When set to a truthy
// value, test data survives the run.
const PreserveEnvVar = "TEST_DB_PRESERVE"

// Appointment maps the appointments table managed by the migrations. gantry
// only uses it to prune rows created during a test run.
type Appointment struct {
	ID            int       `gorm:"column:id;primaryKey"`
	AppointmentID string    `gorm:"column:appointment_id;uniqueIndex"`
	DoctorID      string    `gorm:"column:doctor_id;index"`
	PatientID     string    `gorm:"column:patient_id;index"`
	FacilityID    string    `gorm:"column:facility_id;index"`
	DoctorName    string    `gorm:"column:doctor_name"`
	PatientName   string    `gorm:"column:patient_name"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// PreserveRequested reports whether the environment asks to keep test data.
func PreserveRequested() bool {
	v := os.Getenv(PreserveEnvVar)
	return v == "1" || v == "true" || v == "yes"
}

// PruneTestData removes all appointment rows unless preservation was
// requested. It returns the number of deleted rows.
func PruneTestData(dbConn *gorm.DB) (int64, error) {
	if PreserveRequested() {
		fmt.Printf("%s is set, keeping test data\n", PreserveEnvVar)
		return 0, nil
	}

	tx := dbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Appointment{})
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to prune test data: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}
