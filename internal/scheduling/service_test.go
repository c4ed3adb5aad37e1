package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kennndev/mindflow/internal/models"
)

type mockSessionRepo struct {
	store map[string]*models.Session
	seq   int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{store: make(map[string]*models.Session)}
}

func (m *mockSessionRepo) FindActiveByDoctorAndTime(_ context.Context, doctorID string, when time.Time) (*models.Session, error) {
	for _, s := range m.store {
		if s.DoctorID == doctorID && s.ScheduledDate.Equal(when) && s.Status.IsActive() {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSessionRepo) Create(_ context.Context, session *models.Session) error {
	if session.SlotKey != nil {
		for _, s := range m.store {
			if s.SlotKey != nil && *s.SlotKey == *session.SlotKey {
				return ErrSlotUnavailable
			}
		}
	}
	m.seq++
	session.ID = fmt.Sprintf("internal-%d", m.seq)
	copied := *session
	m.store[session.ID] = &copied
	return nil
}

func (m *mockSessionRepo) FindByID(_ context.Context, id string) (*models.Session, error) {
	s, ok := m.store[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockSessionRepo) Save(_ context.Context, session *models.Session) error {
	if _, ok := m.store[session.ID]; !ok {
		return ErrSessionNotFound
	}
	copied := *session
	m.store[session.ID] = &copied
	return nil
}

func (m *mockSessionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.store)), nil
}

func (m *mockSessionRepo) ListByPatient(_ context.Context, patientID string, filter SessionFilter) ([]models.Session, error) {
	var out []models.Session
	for _, s := range m.store {
		if s.PatientID != patientID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Upcoming && (s.ScheduledDate.Before(filter.Now) || s.Status.IsTerminal()) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSessionRepo) ListActiveByDoctor(_ context.Context, doctorID string, _ ScheduleFilter) ([]models.Session, error) {
	var out []models.Session
	for _, s := range m.store {
		if s.DoctorID == doctorID && s.Status.IsActive() {
			out = append(out, *s)
		}
	}
	return out, nil
}

type mockDirectory struct {
	doctors  map[string]*models.Doctor // by profile id
	patients map[string]*models.Patient
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{doctors: make(map[string]*models.Doctor), patients: make(map[string]*models.Patient)}
}

func (m *mockDirectory) addDoctor(id, userID string, approved bool) *models.Doctor {
	d := &models.Doctor{UserID: userID, DoctorID: "D-" + id, IsApproved: approved}
	d.ID = id
	m.doctors[id] = d
	return d
}

func (m *mockDirectory) addPatient(id, userID string) *models.Patient {
	p := &models.Patient{UserID: userID, PatientID: "P-" + id}
	p.ID = id
	m.patients[id] = p
	return p
}

func (m *mockDirectory) FindDoctorByID(_ context.Context, id string) (*models.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return d, nil
}

func (m *mockDirectory) FindDoctorByUser(_ context.Context, userID string) (*models.Doctor, error) {
	for _, d := range m.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (m *mockDirectory) FindPatientByUser(_ context.Context, userID string) (*models.Patient, error) {
	for _, p := range m.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, ErrPatientProfileMissing
}

func (m *mockDirectory) AssignDoctorIfUnset(_ context.Context, patientID, doctorID string) error {
	p, ok := m.patients[patientID]
	if !ok {
		return ErrPatientProfileMissing
	}
	if p.AssignedDoctorID == nil {
		p.AssignedDoctorID = &doctorID
	}
	return nil
}

type mockCheckInRepo struct {
	store map[string]*models.CheckIn
	seq   int
}

func newMockCheckInRepo() *mockCheckInRepo {
	return &mockCheckInRepo{store: make(map[string]*models.CheckIn)}
}

func (m *mockCheckInRepo) Create(_ context.Context, checkIn *models.CheckIn) error {
	m.seq++
	checkIn.ID = fmt.Sprintf("checkin-%d", m.seq)
	copied := *checkIn
	m.store[checkIn.ID] = &copied
	return nil
}

func (m *mockCheckInRepo) ListByPatient(_ context.Context, patientID string, sessionID *string) ([]models.CheckIn, error) {
	var out []models.CheckIn
	for _, c := range m.store {
		if c.PatientID != patientID {
			continue
		}
		if sessionID != nil && (c.SessionID == nil || *c.SessionID != *sessionID) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

type fixture struct {
	svc      *Service
	sessions *mockSessionRepo
	dir      *mockDirectory
	checkIns *mockCheckInRepo
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sessions := newMockSessionRepo()
	dir := newMockDirectory()
	checkIns := newMockCheckInRepo()
	svc := NewService(sessions, dir, checkIns, NewNoopSlotLocker(), 15*time.Minute)
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }
	return &fixture{svc: svc, sessions: sessions, dir: dir, checkIns: checkIns, now: now}
}

var bookingTime = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

func (f *fixture) book(t *testing.T, patientUser, doctorID string, at time.Time, mode models.SessionMode) *models.Session {
	t.Helper()
	session, err := f.svc.Book(context.Background(), BookingInput{
		PatientUserID: patientUser,
		DoctorID:      doctorID,
		ScheduledDate: at,
		Mode:          mode,
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return session
}

func TestBookCreatesScheduledVideoSession(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)

	if session.Status != models.SessionScheduled {
		t.Errorf("status = %q, want scheduled", session.Status)
	}
	if session.Duration != 50 {
		t.Errorf("duration = %d, want default 50", session.Duration)
	}
	if session.Type != models.SessionTypeFollowUp {
		t.Errorf("type = %q, want follow-up", session.Type)
	}
	wantRoom := fmt.Sprintf("mindflow-s-%d-1", f.now.UnixMilli())
	if session.VideoRoomID != wantRoom {
		t.Errorf("videoRoomId = %q, want %q", session.VideoRoomID, wantRoom)
	}
	if session.VideoRoomURL != session.VideoRoomID {
		t.Errorf("videoRoomUrl = %q, want alias of %q", session.VideoRoomURL, session.VideoRoomID)
	}
	if session.LinkExpiresAt == nil || !session.LinkExpiresAt.Equal(f.now.Add(15*time.Minute)) {
		t.Errorf("linkExpiresAt = %v, want %v", session.LinkExpiresAt, f.now.Add(15*time.Minute))
	}
	if session.SlotKey == nil {
		t.Error("slot key not set on active session")
	}
}

func TestBookNonVideoHasNoRoom(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeInPerson)
	if session.VideoRoomID != "" || session.LinkExpiresAt != nil {
		t.Errorf("in-person session carries video linkage: room=%q expiry=%v", session.VideoRoomID, session.LinkExpiresAt)
	}
}

func TestBookConflictExclusivity(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addDoctor("doc-2", "user-doc-2", true)
	f.dir.addPatient("pat-1", "user-pat-1")
	f.dir.addPatient("pat-2", "user-pat-2")

	f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)

	_, err := f.svc.Book(context.Background(), BookingInput{
		PatientUserID: "user-pat-2",
		DoctorID:      "doc-1",
		ScheduledDate: bookingTime,
		Mode:          models.ModeVideo,
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("same doctor, same instant: err = %v, want ErrSlotUnavailable", err)
	}

	// Same instant, different doctor is fine.
	f.book(t, "user-pat-2", "doc-2", bookingTime, models.ModeVideo)

	// A cancelled session releases the slot.
	other := f.book(t, "user-pat-1", "doc-1", bookingTime.Add(time.Hour), models.ModeVideo)
	if _, err := f.svc.Cancel(context.Background(), other.ID, "user-pat-1", models.RolePatient, ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	f.book(t, "user-pat-2", "doc-1", bookingTime.Add(time.Hour), models.ModeVideo)
}

func TestBookRejectsUnapprovedDoctor(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", false)
	f.dir.addPatient("pat-1", "user-pat-1")

	_, err := f.svc.Book(context.Background(), BookingInput{
		PatientUserID: "user-pat-1",
		DoctorID:      "doc-1",
		ScheduledDate: bookingTime,
		Mode:          models.ModeVideo,
	})
	if !errors.Is(err, ErrDoctorNotApproved) {
		t.Errorf("err = %v, want ErrDoctorNotApproved", err)
	}
}

func TestBookRequiresPatientProfile(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)

	_, err := f.svc.Book(context.Background(), BookingInput{
		PatientUserID: "user-ghost",
		DoctorID:      "doc-1",
		ScheduledDate: bookingTime,
		Mode:          models.ModeVideo,
	})
	if !errors.Is(err, ErrPatientProfileMissing) {
		t.Errorf("err = %v, want ErrPatientProfileMissing", err)
	}
}

func TestBookAssignsDoctorOnFirstBooking(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addDoctor("doc-2", "user-doc-2", true)
	patient := f.dir.addPatient("pat-1", "user-pat-1")

	f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)
	if patient.AssignedDoctorID == nil || *patient.AssignedDoctorID != "doc-1" {
		t.Fatalf("assignedDoctor = %v, want doc-1", patient.AssignedDoctorID)
	}

	// Subsequent bookings do not reassign.
	f.book(t, "user-pat-1", "doc-2", bookingTime.Add(time.Hour), models.ModeVideo)
	if *patient.AssignedDoctorID != "doc-1" {
		t.Errorf("assignedDoctor = %q, want doc-1 (first booking wins)", *patient.AssignedDoctorID)
	}
}

func TestCancelTransitionGuard(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)

	cancelled, err := f.svc.Cancel(context.Background(), session.ID, "user-pat-1", models.RolePatient, "feeling better")
	if err != nil {
		t.Fatalf("cancel scheduled session: %v", err)
	}
	if cancelled.Status != models.SessionCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}
	if cancelled.CancelledBy != models.CancelledByPatient {
		t.Errorf("cancelledBy = %q, want patient", cancelled.CancelledBy)
	}
	if cancelled.CancelledAt == nil || !cancelled.CancelledAt.Equal(f.now) {
		t.Errorf("cancelledAt = %v, want %v", cancelled.CancelledAt, f.now)
	}
	if cancelled.CancellationReason != "feeling better" {
		t.Errorf("cancellationReason = %q", cancelled.CancellationReason)
	}
	if cancelled.SlotKey != nil {
		t.Error("slot key not released on cancellation")
	}

	// Cancelling again must fail naming the current status.
	_, err = f.svc.Cancel(context.Background(), session.ID, "user-pat-1", models.RolePatient, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if !strings.Contains(err.Error(), string(models.SessionCancelled)) {
		t.Errorf("transition error %q does not name current status", err)
	}
}

func TestCancelCompletedSessionFails(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)
	if _, err := f.svc.UpdateStatus(context.Background(), session.ID, "user-doc-1", models.SessionInProgress); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), session.ID, "user-doc-1", models.SessionCompleted); err != nil {
		t.Fatalf("complete session: %v", err)
	}

	_, err := f.svc.Cancel(context.Background(), session.ID, "user-pat-1", models.RolePatient, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancel completed: err = %v, want ErrInvalidTransition", err)
	}
	if err != nil && !strings.Contains(err.Error(), string(models.SessionCompleted)) {
		t.Errorf("transition error %q does not name completed", err)
	}
}

func TestCancelByStranger(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")
	f.dir.addPatient("pat-2", "user-pat-2")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)
	_, err := f.svc.Cancel(context.Background(), session.ID, "user-pat-2", models.RolePatient, "")
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func TestStatusProgression(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)

	confirmed, err := f.svc.UpdateStatus(context.Background(), session.ID, "user-doc-1", models.SessionConfirmed)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != models.SessionConfirmed {
		t.Errorf("status = %q, want confirmed", confirmed.Status)
	}

	started, err := f.svc.UpdateStatus(context.Background(), session.ID, "user-doc-1", models.SessionInProgress)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.ActualStartTime == nil {
		t.Error("actualStartTime not stamped on start")
	}

	done, err := f.svc.UpdateStatus(context.Background(), session.ID, "user-doc-1", models.SessionCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.ActualEndTime == nil {
		t.Error("actualEndTime not stamped on completion")
	}
	if done.SlotKey != nil {
		t.Error("slot key not released on completion")
	}

	// Completed is terminal.
	if _, err := f.svc.UpdateStatus(context.Background(), session.ID, "user-doc-1", models.SessionInProgress); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("restart completed: err = %v, want ErrInvalidTransition", err)
	}
}

func TestStatusUpdateByOtherDoctor(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addDoctor("doc-2", "user-doc-2", true)
	f.dir.addPatient("pat-1", "user-pat-1")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)
	_, err := f.svc.UpdateStatus(context.Background(), session.ID, "user-doc-2", models.SessionConfirmed)
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func TestCheckInLinkage(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)

	checkIn, err := f.svc.SubmitCheckIn(context.Background(), CheckInInput{
		PatientUserID:  "user-pat-1",
		SessionID:      &session.ID,
		Mood:           7,
		PrimaryConcern: models.ConcernAnxiety,
		Severity:       3,
	})
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}

	stored, err := f.sessions.FindByID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if stored.CheckInID == nil || *stored.CheckInID != checkIn.ID {
		t.Errorf("checkInId = %v, want %q", stored.CheckInID, checkIn.ID)
	}
	if !stored.CheckInCompleted {
		t.Error("checkInCompleted not set")
	}

	// Relinking overwrites (last write wins).
	second, err := f.svc.SubmitCheckIn(context.Background(), CheckInInput{
		PatientUserID:  "user-pat-1",
		SessionID:      &session.ID,
		Mood:           4,
		PrimaryConcern: models.ConcernSleep,
		Severity:       2,
	})
	if err != nil {
		t.Fatalf("second check-in: %v", err)
	}
	stored, _ = f.sessions.FindByID(context.Background(), session.ID)
	if *stored.CheckInID != second.ID {
		t.Errorf("checkInId = %q, want latest %q", *stored.CheckInID, second.ID)
	}
}

func TestCheckInRejectsForeignSession(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")
	f.dir.addPatient("pat-2", "user-pat-2")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)
	_, err := f.svc.SubmitCheckIn(context.Background(), CheckInInput{
		PatientUserID:  "user-pat-2",
		SessionID:      &session.ID,
		Mood:           5,
		PrimaryConcern: models.ConcernStress,
		Severity:       2,
	})
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func TestNotesOwnership(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addDoctor("doc-2", "user-doc-2", true)
	f.dir.addPatient("pat-1", "user-pat-1")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)

	plan := "weekly CBT"
	_, err := f.svc.UpdateNotes(context.Background(), session.ID, "user-doc-2", NotesUpdate{TreatmentPlan: &plan})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign doctor: err = %v, want ErrNotOwner", err)
	}

	stored, _ := f.sessions.FindByID(context.Background(), session.ID)
	if stored.TreatmentPlan != "" || stored.NotesUpdatedAt != nil {
		t.Error("rejected notes update still mutated the session")
	}

	if _, err := f.svc.GetNotes(context.Background(), session.ID, "user-doc-2"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("foreign doctor read: err = %v, want ErrNotOwner", err)
	}
}

func TestNotesPartialUpdate(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)

	concerns := "sleep disruption"
	risk := models.RiskLow
	notes, err := f.svc.UpdateNotes(context.Background(), session.ID, "user-doc-1", NotesUpdate{
		PresentingConcerns: &concerns,
		RiskAssessment:     &risk,
	})
	if err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if notes.PresentingConcerns != concerns || notes.RiskAssessment != risk {
		t.Errorf("notes = %+v", notes)
	}
	if notes.NotesUpdatedAt == nil || !notes.NotesUpdatedAt.Equal(f.now) {
		t.Errorf("notesUpdatedAt = %v, want %v", notes.NotesUpdatedAt, f.now)
	}

	// A second partial save leaves unrelated fields alone and restamps.
	homework := "mood diary"
	notes, err = f.svc.UpdateNotes(context.Background(), session.ID, "user-doc-1", NotesUpdate{Homework: &homework})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if notes.PresentingConcerns != concerns {
		t.Errorf("presentingConcerns lost: %q", notes.PresentingConcerns)
	}
	if notes.Homework != homework {
		t.Errorf("homework = %q, want %q", notes.Homework, homework)
	}

	// Notes remain editable after completion.
	if _, err := f.svc.UpdateStatus(context.Background(), session.ID, "user-doc-1", models.SessionInProgress); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), session.ID, "user-doc-1", models.SessionCompleted); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.UpdateNotes(context.Background(), session.ID, "user-doc-1", NotesUpdate{Homework: &homework}); err != nil {
		t.Errorf("notes after completion: %v", err)
	}
}

func TestBookingEndToEnd(t *testing.T) {
	f := newFixture(t)
	f.dir.addDoctor("doc-1", "user-doc-1", true)
	f.dir.addPatient("pat-1", "user-pat-1")
	f.dir.addPatient("pat-2", "user-pat-2")

	session := f.book(t, "user-pat-1", "doc-1", bookingTime, models.ModeVideo)
	if session.Status != models.SessionScheduled {
		t.Fatalf("status = %q", session.Status)
	}

	wantPrefix := "mindflow-s-"
	if !strings.HasPrefix(session.VideoRoomID, wantPrefix) {
		t.Errorf("videoRoomId = %q, want %q prefix", session.VideoRoomID, wantPrefix)
	}

	_, err := f.svc.Book(context.Background(), BookingInput{
		PatientUserID: "user-pat-2",
		DoctorID:      "doc-1",
		ScheduledDate: bookingTime,
		Mode:          models.ModeVideo,
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("double booking: err = %v, want ErrSlotUnavailable", err)
	}

	// At 13:46 both parties re-derive the same room and may join.
	checkTime := time.Date(2025, 6, 1, 13, 46, 0, 0, time.UTC)

	patientRoom, err := VideoRoomID(session.SessionID, session.ID)
	if err != nil {
		t.Fatal(err)
	}
	doctorRoom, err := VideoRoomID(session.SessionID, session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if patientRoom != doctorRoom || patientRoom != session.VideoRoomID {
		t.Errorf("room derivation diverged: %q / %q / stored %q", patientRoom, doctorRoom, session.VideoRoomID)
	}

	w := EvaluateJoinWindow(checkTime, session.ScheduledDate, session.Duration)
	if !w.CanJoin() {
		t.Errorf("join window at %v: state = %q, want joinable", checkTime, w.State)
	}
}
