package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/industrahub/industrahub-backend/pkg/db"
	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/pagination"
)

const uuidDefault = `(lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' ||
	lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6))))`

type stubUserLoader struct {
	users map[uuid.UUID]*models.User
}

func (s *stubUserLoader) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func openServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	schemas := []string{
		`CREATE TABLE maintenance_details (
			id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
			machine_brand TEXT NOT NULL,
			machine_model TEXT NOT NULL,
			machine_type TEXT,
			problem_summary TEXT NOT NULL,
			location TEXT NOT NULL,
			preferred_date DATETIME,
			on_site_required BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE consultancy_details (
			id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
			topic TEXT NOT NULL,
			industry TEXT NOT NULL,
			description TEXT NOT NULL,
			budget_range TEXT,
			duration_weeks INTEGER,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE turnkey_details (
			id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
			project_name TEXT NOT NULL,
			project_scope TEXT NOT NULL,
			location TEXT NOT NULL,
			estimated_budget TEXT,
			target_date DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE acquisition_details (
			id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
			target_kind TEXT NOT NULL,
			description TEXT NOT NULL,
			budget_range TEXT,
			region TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE manpower_details (
			id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
			position_title TEXT NOT NULL,
			head_count INTEGER NOT NULL DEFAULT 1,
			skills_required TEXT NOT NULL,
			location TEXT NOT NULL,
			contract_type TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE job_seeker_details (
			id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
			full_name TEXT NOT NULL,
			profession TEXT NOT NULL,
			years_experience INTEGER NOT NULL DEFAULT 0,
			summary TEXT,
			cv_url TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE service_requests (
			id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
			service_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'SUBMITTED',
			requester_id TEXT NOT NULL,
			assigned_to_id TEXT,
			maintenance_detail_id TEXT,
			consultancy_detail_id TEXT,
			turnkey_detail_id TEXT,
			acquisition_detail_id TEXT,
			manpower_detail_id TEXT,
			job_seeker_detail_id TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE service_action_logs (
			id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
			service_request_id TEXT NOT NULL REFERENCES service_requests(id) ON DELETE CASCADE,
			actor_id TEXT NOT NULL,
			action TEXT NOT NULL,
			created_at DATETIME
		)`,
	}
	for _, schema := range schemas {
		if err := conn.Exec(schema).Error; err != nil {
			t.Fatalf("creating schema: %v", err)
		}
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB, users *stubUserLoader) Service {
	t.Helper()
	if users == nil {
		users = &stubUserLoader{users: map[uuid.UUID]*models.User{}}
	}
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), users)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func validMaintenanceInput() MaintenanceInput {
	return MaintenanceInput{
		MachineBrand:   "DMG Mori",
		MachineModel:   "NLX 2500",
		ProblemSummary: "Spindle vibration above tolerance",
		Location:       "Monterrey",
		OnSiteRequired: true,
	}
}

func actionLogs(t *testing.T, conn *gorm.DB, requestID uuid.UUID) []models.ServiceActionLog {
	t.Helper()
	var logs []models.ServiceActionLog
	err := conn.Where("service_request_id = ?", requestID).Order("created_at ASC").Find(&logs).Error
	if err != nil {
		t.Fatalf("loading action logs: %v", err)
	}
	return logs
}

func TestCreateMaintenanceWritesEnvelopeDetailAndLog(t *testing.T) {
	conn := openServiceDB(t)
	svc := newTestService(t, conn, nil)

	requesterID := uuid.New()
	dto, err := svc.CreateMaintenance(context.Background(), requesterID, validMaintenanceInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.ServiceType != enums.ServiceTypeMaintenance {
		t.Fatalf("expected MAINTENANCE, got %s", dto.ServiceType)
	}
	if dto.Status != enums.ServiceStatusSubmitted {
		t.Fatalf("expected SUBMITTED, got %s", dto.Status)
	}
	if dto.Maintenance == nil {
		t.Fatal("expected maintenance detail on the dto")
	}

	reloaded, err := NewRepository(conn).FindByID(context.Background(), dto.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.MaintenanceDetail == nil {
		t.Fatal("expected detail row to be persisted")
	}
	if reloaded.MaintenanceDetail.MachineBrand != "DMG Mori" {
		t.Fatalf("unexpected detail: %+v", reloaded.MaintenanceDetail)
	}

	logs := actionLogs(t, conn, dto.ID)
	if len(logs) != 1 {
		t.Fatalf("expected exactly one audit row, got %d", len(logs))
	}
	if logs[0].Action != "submitted" || logs[0].ActorID != requesterID {
		t.Fatalf("unexpected audit row: %+v", logs[0])
	}
}

func TestListAdminRejectsMalformedCursor(t *testing.T) {
	conn := openServiceDB(t)
	svc := newTestService(t, conn, nil)

	_, err := svc.ListAdmin(context.Background(), ListInput{
		Pagination: pagination.Params{Limit: 10, Cursor: "!!not-base64!!"},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for malformed cursor, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	conn := openServiceDB(t)
	svc := newTestService(t, conn, nil)
	requesterID := uuid.New()

	expectValidation := func(t *testing.T, err error) {
		t.Helper()
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	}

	t.Run("maintenance missing field", func(t *testing.T) {
		input := validMaintenanceInput()
		input.ProblemSummary = "  "
		_, err := svc.CreateMaintenance(context.Background(), requesterID, input)
		expectValidation(t, err)
	})

	t.Run("manpower head count below one", func(t *testing.T) {
		_, err := svc.CreateManpower(context.Background(), requesterID, ManpowerInput{
			PositionTitle:  "CNC operator",
			HeadCount:      0,
			SkillsRequired: "Fanuc controls",
			Location:       "Queretaro",
		})
		expectValidation(t, err)
	})

	t.Run("job seeker negative experience", func(t *testing.T) {
		_, err := svc.CreateJobSeeker(context.Background(), requesterID, JobSeekerInput{
			FullName:        "R. Alvarez",
			Profession:      "Welder",
			YearsExperience: -1,
		})
		expectValidation(t, err)
	})
}

func TestEachServiceTypeCreatesItsDetail(t *testing.T) {
	conn := openServiceDB(t)
	svc := newTestService(t, conn, nil)
	requesterID := uuid.New()
	ctx := context.Background()

	consultancy, err := svc.CreateConsultancy(ctx, requesterID, ConsultancyInput{
		Topic:       "Line automation",
		Industry:    "Automotive",
		Description: "Feasibility study for robotic welding cell",
	})
	if err != nil {
		t.Fatalf("consultancy: %v", err)
	}
	if consultancy.Consultancy == nil || consultancy.ServiceType != enums.ServiceTypeConsultancy {
		t.Fatalf("unexpected consultancy dto: %+v", consultancy)
	}

	turnkey, err := svc.CreateTurnkey(ctx, requesterID, TurnkeyInput{
		ProjectName:  "Bottling plant",
		ProjectScope: "Full line install and commissioning",
		Location:     "Tijuana",
	})
	if err != nil {
		t.Fatalf("turnkey: %v", err)
	}
	if turnkey.Turnkey == nil || turnkey.ServiceType != enums.ServiceTypeTurnkey {
		t.Fatalf("unexpected turnkey dto: %+v", turnkey)
	}

	acquisition, err := svc.CreateAcquisition(ctx, requesterID, AcquisitionInput{
		TargetKind:  "Used press line",
		Description: "Looking for a 600t stamping press",
	})
	if err != nil {
		t.Fatalf("acquisition: %v", err)
	}
	if acquisition.Acquisition == nil || acquisition.ServiceType != enums.ServiceTypeAcquisition {
		t.Fatalf("unexpected acquisition dto: %+v", acquisition)
	}

	manpower, err := svc.CreateManpower(ctx, requesterID, ManpowerInput{
		PositionTitle:  "Maintenance tech",
		HeadCount:      3,
		SkillsRequired: "Hydraulics",
		Location:       "Saltillo",
	})
	if err != nil {
		t.Fatalf("manpower: %v", err)
	}
	if manpower.Manpower == nil || manpower.ServiceType != enums.ServiceTypeManpower {
		t.Fatalf("unexpected manpower dto: %+v", manpower)
	}

	jobSeeker, err := svc.CreateJobSeeker(ctx, requesterID, JobSeekerInput{
		FullName:        "R. Alvarez",
		Profession:      "Welder",
		YearsExperience: 8,
	})
	if err != nil {
		t.Fatalf("job seeker: %v", err)
	}
	if jobSeeker.JobSeeker == nil || jobSeeker.ServiceType != enums.ServiceTypeJobSeeker {
		t.Fatalf("unexpected job seeker dto: %+v", jobSeeker)
	}

	mine, err := svc.ListMine(ctx, requesterID)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 5 {
		t.Fatalf("expected 5 requests, got %d", len(mine))
	}
}

func TestUpdateStatusAppendsOneAuditRow(t *testing.T) {
	conn := openServiceDB(t)
	svc := newTestService(t, conn, nil)

	requesterID := uuid.New()
	actorID := uuid.New()
	created, err := svc.CreateMaintenance(context.Background(), requesterID, validMaintenanceInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dto, err := svc.UpdateStatus(context.Background(), created.ID, actorID, enums.ServiceStatusInReview)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Status != enums.ServiceStatusInReview {
		t.Fatalf("expected IN_REVIEW, got %s", dto.Status)
	}

	logs := actionLogs(t, conn, created.ID)
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit rows after one change, got %d", len(logs))
	}
	last := logs[len(logs)-1]
	if last.Action != "status changed from SUBMITTED to IN_REVIEW" {
		t.Fatalf("unexpected action text: %q", last.Action)
	}
	if last.ActorID != actorID {
		t.Fatalf("expected actor %s, got %s", actorID, last.ActorID)
	}

	t.Run("any valid status is reachable", func(t *testing.T) {
		if _, err := svc.UpdateStatus(context.Background(), created.ID, actorID, enums.ServiceStatusSubmitted); err != nil {
			t.Fatalf("expected backwards move to be allowed, got %v", err)
		}
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), created.ID, actorID, enums.ServiceStatus("PAUSED"))
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), uuid.New(), actorID, enums.ServiceStatusInReview)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestAssign(t *testing.T) {
	conn := openServiceDB(t)

	adminID := uuid.New()
	buyerID := uuid.New()
	users := &stubUserLoader{users: map[uuid.UUID]*models.User{
		adminID: {ID: adminID, Role: enums.UserRoleAdmin},
		buyerID: {ID: buyerID, Role: enums.UserRoleNormal},
	}}
	svc := newTestService(t, conn, users)

	actorID := uuid.New()
	created, err := svc.CreateMaintenance(context.Background(), uuid.New(), validMaintenanceInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("assigning an admin works", func(t *testing.T) {
		dto, err := svc.Assign(context.Background(), created.ID, actorID, &adminID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dto.AssignedToID == nil || *dto.AssignedToID != adminID {
			t.Fatalf("expected assignee %s, got %v", adminID, dto.AssignedToID)
		}

		logs := actionLogs(t, conn, created.ID)
		last := logs[len(logs)-1]
		if last.Action != fmt.Sprintf("assigned to %s", adminID) {
			t.Fatalf("unexpected action text: %q", last.Action)
		}
	})

	t.Run("non-admin assignee is rejected", func(t *testing.T) {
		_, err := svc.Assign(context.Background(), created.ID, actorID, &buyerID)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown assignee is not found", func(t *testing.T) {
		unknown := uuid.New()
		_, err := svc.Assign(context.Background(), created.ID, actorID, &unknown)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("nil assignee clears the assignment", func(t *testing.T) {
		dto, err := svc.Assign(context.Background(), created.ID, actorID, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dto.AssignedToID != nil {
			t.Fatalf("expected cleared assignment, got %v", dto.AssignedToID)
		}

		logs := actionLogs(t, conn, created.ID)
		last := logs[len(logs)-1]
		if last.Action != "assignment cleared" {
			t.Fatalf("unexpected action text: %q", last.Action)
		}
	})
}

func TestDeleteServiceRequest(t *testing.T) {
	conn := openServiceDB(t)
	svc := newTestService(t, conn, nil)

	created, err := svc.CreateMaintenance(context.Background(), uuid.New(), validMaintenanceInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("plain admin is forbidden", func(t *testing.T) {
		err := svc.Delete(context.Background(), created.ID, enums.UserRoleAdmin)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("super admin removes everything", func(t *testing.T) {
		if err := svc.Delete(context.Background(), created.ID, enums.UserRoleSuperAdmin); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := svc.Get(context.Background(), created.ID)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found after delete, got %v", err)
		}

		if logs := actionLogs(t, conn, created.ID); len(logs) != 0 {
			t.Fatalf("expected audit rows to cascade, got %d", len(logs))
		}

		var detailCount int64
		if err := conn.Table("maintenance_details").Count(&detailCount).Error; err != nil {
			t.Fatalf("counting details: %v", err)
		}
		if detailCount != 0 {
			t.Fatalf("expected detail row to be removed, got %d", detailCount)
		}
	})
}
