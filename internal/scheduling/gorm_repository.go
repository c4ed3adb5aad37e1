package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/kennndev/mindflow/internal/models"
)

// GormSessionRepository is the MySQL-backed session store.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a session repository over the given DB.
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) FindActiveByDoctorAndTime(ctx context.Context, doctorID string, when time.Time) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND scheduled_date = ? AND status IN ?",
			doctorID, when,
			[]models.SessionStatus{models.SessionScheduled, models.SessionConfirmed, models.SessionInProgress}).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active session: %w", err)
	}
	return &session, nil
}

// isDuplicateKey recognizes the unique-index rejection on the slot key.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func (r *GormSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrSlotUnavailable
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *GormSessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &session, nil
}

func (r *GormSessionRepository) Save(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *GormSessionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Session{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (r *GormSessionRepository) ListByPatient(ctx context.Context, patientID string, filter SessionFilter) ([]models.Session, error) {
	query := r.db.WithContext(ctx).Preload("Doctor").Where("patient_id = ?", patientID)
	order := "scheduled_date desc"

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Upcoming {
		query = query.Where("scheduled_date >= ? AND status IN ?",
			filter.Now, []models.SessionStatus{models.SessionScheduled, models.SessionConfirmed})
		order = "scheduled_date asc"
	}

	var sessions []models.Session
	if err := query.Order(order).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list patient sessions: %w", err)
	}
	return sessions, nil
}

func (r *GormSessionRepository) ListActiveByDoctor(ctx context.Context, doctorID string, filter ScheduleFilter) ([]models.Session, error) {
	query := r.db.WithContext(ctx).Preload("Patient").Preload("CheckIn").
		Where("doctor_id = ? AND status IN ?", doctorID,
			[]models.SessionStatus{models.SessionScheduled, models.SessionConfirmed, models.SessionInProgress})

	if filter.Date != nil {
		dayStart := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		query = query.Where("scheduled_date >= ? AND scheduled_date < ?", dayStart, dayStart.AddDate(0, 0, 1))
	} else {
		dayStart := time.Date(filter.Now.Year(), filter.Now.Month(), filter.Now.Day(), 0, 0, 0, 0, filter.Now.Location())
		query = query.Where("scheduled_date >= ?", dayStart)
	}

	var sessions []models.Session
	if err := query.Order("scheduled_date asc").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list doctor schedule: %w", err)
	}
	return sessions, nil
}

// GormDirectory resolves patient and doctor profiles from MySQL.
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a directory over the given DB.
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) FindDoctorByID(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := d.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return &doctor, nil
}

func (d *GormDirectory) FindDoctorByUser(ctx context.Context, userID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := d.db.WithContext(ctx).First(&doctor, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find doctor by user: %w", err)
	}
	return &doctor, nil
}

func (d *GormDirectory) FindPatientByUser(ctx context.Context, userID string) (*models.Patient, error) {
	var patient models.Patient
	err := d.db.WithContext(ctx).First(&patient, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientProfileMissing
	}
	if err != nil {
		return nil, fmt.Errorf("find patient by user: %w", err)
	}
	return &patient, nil
}

func (d *GormDirectory) AssignDoctorIfUnset(ctx context.Context, patientID, doctorID string) error {
	err := d.db.WithContext(ctx).Model(&models.Patient{}).
		Where("id = ? AND assigned_doctor_id IS NULL", patientID).
		Update("assigned_doctor_id", doctorID).Error
	if err != nil {
		return fmt.Errorf("assign doctor: %w", err)
	}
	return nil
}

// GormCheckInRepository persists check-ins in MySQL.
type GormCheckInRepository struct {
	db *gorm.DB
}

// NewGormCheckInRepository creates a check-in repository over the given DB.
func NewGormCheckInRepository(db *gorm.DB) *GormCheckInRepository {
	return &GormCheckInRepository{db: db}
}

func (r *GormCheckInRepository) Create(ctx context.Context, checkIn *models.CheckIn) error {
	if err := r.db.WithContext(ctx).Create(checkIn).Error; err != nil {
		return fmt.Errorf("create check-in: %w", err)
	}
	return nil
}

func (r *GormCheckInRepository) ListByPatient(ctx context.Context, patientID string, sessionID *string) ([]models.CheckIn, error) {
	query := r.db.WithContext(ctx).Where("patient_id = ?", patientID)
	if sessionID != nil && *sessionID != "" {
		query = query.Where("session_id = ?", *sessionID)
	}

	var checkIns []models.CheckIn
	if err := query.Order("created_at desc").Find(&checkIns).Error; err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	return checkIns, nil
}
