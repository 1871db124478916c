package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/ledger"
	"equipment-tracker/internal/repositories"
	"equipment-tracker/internal/services"
	"equipment-tracker/pkg/customvalidator"
	"equipment-tracker/pkg/service"
	"equipment-tracker/pkg/utils"
	"equipment-tracker/pkg/websocket"
	"equipment-tracker/seeders"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// failingStore fails every save from the failFrom-th one on; zero never fails.
type failingStore struct {
	*repositories.MemorySnapshotRepository
	saves    int
	failFrom int
}

func (f *failingStore) SaveAll(ctx context.Context, snapshots map[string][]byte) error {
	f.saves++
	if f.failFrom > 0 && f.saves >= f.failFrom {
		return errors.New("snapshot store unavailable")
	}
	return f.MemorySnapshotRepository.SaveAll(ctx, snapshots)
}

type envelope struct {
	Status  bool            `json:"status"`
	Body    json.RawMessage `json:"body"`
	Message string          `json:"message"`
	Total   *uint64         `json:"total"`
}

// LedgerFlowSuite drives the HTTP API end to end on an in-memory ledger.
type LedgerFlowSuite struct {
	suite.Suite
	Echo           *echo.Echo
	Ledger         *ledger.Ledger
	Store          *failingStore
	LogisticsToken string
	NurseToken     string
}

func (s *LedgerFlowSuite) SetupTest() {
	e := echo.New()
	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := &failingStore{MemorySnapshotRepository: repositories.NewMemorySnapshotRepository()}
	l := ledger.New(store, ledger.WithClock(ledger.ClockFunc(clock)))
	s.Require().NoError(l.Load(context.Background()))

	nop := zap.NewNop()
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	svc := &Services{
		Auth:         services.NewAuthService(services.NewStaticUserDirectory(seeders.DefaultUsers()), jwtSvc, nop),
		Equipment:    services.NewEquipmentService(l, nop),
		Excel:        services.NewEquipmentExcelService(l, nop),
		Category:     services.NewCategoryService(l, nop),
		DamageReport: services.NewDamageReportService(l, nop),
		Request:      services.NewEquipmentRequestService(l, nop),
		Notification: services.NewNotificationService(l, 30, nop),
		Dashboard:    services.NewDashboardService(l, 30, clock, nop),
	}
	InitRouter(e, svc, websocket.NewHub(nop), jwtSvc, &Loggers{Main: nop, Auth: nop, HTTP: nop})

	s.Echo = e
	s.Ledger = l
	s.Store = store
	s.LogisticsToken = s.login("1")
	s.NurseToken = s.login("2")
}

func (s *LedgerFlowSuite) login(userID string) string {
	rec := s.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{UserID: userID})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var res dto.LoginResponseDTO
	s.decode(rec, &res)
	s.Require().NotEmpty(res.AccessToken)
	return res.AccessToken
}

func (s *LedgerFlowSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		s.Require().NoError(err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *LedgerFlowSuite) decode(rec *httptest.ResponseRecorder, into interface{}) {
	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	s.Require().True(env.Status, env.Message)
	s.Require().NoError(json.Unmarshal(env.Body, into))
}

func (s *LedgerFlowSuite) createMonitor() entities.Equipment {
	rec := s.do(http.MethodPost, "/api/equipment", s.LogisticsToken, dto.CreateEquipmentDTO{
		Name:                "Patient Monitor",
		Category:            "Monitoring",
		SerialNumber:        "PM-1",
		Location:            "ICU",
		NextMaintenanceDate: "2024-05-20",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var item entities.Equipment
	s.decode(rec, &item)
	return item
}

func (s *LedgerFlowSuite) TestSecuredRoutesRequireToken() {
	rec := s.do(http.MethodGet, "/api/equipment", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{UserID: "404"})
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *LedgerFlowSuite) TestMeReturnsLoggedInUser() {
	rec := s.do(http.MethodGet, "/api/auth/me", s.NurseToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var user entities.User
	s.decode(rec, &user)
	s.Equal("2", user.ID)
}

func (s *LedgerFlowSuite) TestDamageRepairFlow() {
	item := s.createMonitor()

	rec := s.do(http.MethodPost, "/api/damage-reports", s.NurseToken, dto.CreateDamageReportDTO{
		EquipmentID: item.ID,
		Description: "Screen flickers",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var report entities.DamageReport
	s.decode(rec, &report)
	s.Equal("2", report.ReporterID)

	rec = s.do(http.MethodGet, "/api/equipment/"+item.ID, s.LogisticsToken, nil)
	var damaged entities.Equipment
	s.decode(rec, &damaged)
	s.Equal("damaged", string(damaged.Status))

	rec = s.do(http.MethodPatch, fmt.Sprintf("/api/damage-reports/%s/status", report.ID), s.LogisticsToken,
		dto.UpdateDamageReportStatusDTO{Status: "resolved", Notes: "Replaced panel"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/equipment/"+item.ID, s.LogisticsToken, nil)
	var repaired entities.Equipment
	s.decode(rec, &repaired)
	s.Equal("available", string(repaired.Status))

	rec = s.do(http.MethodGet, "/api/notifications?unread=true", s.NurseToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var notes []entities.Notification
	s.decode(rec, &notes)
	s.Require().Len(notes, 1)
	s.Equal("equipment_repaired", string(notes[0].Type))

	rec = s.do(http.MethodPatch, "/api/notifications/read-all", s.NurseToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var marked dto.MarkAllReadResponseDTO
	s.decode(rec, &marked)
	s.Equal(1, marked.Updated)

	rec = s.do(http.MethodGet, "/api/equipment/"+item.ID+"/history", s.LogisticsToken, nil)
	var history []entities.HistoryEntry
	s.decode(rec, &history)
	s.Len(history, 2)
}

func (s *LedgerFlowSuite) TestRequestTerminalStatusConflict() {
	item := s.createMonitor()

	rec := s.do(http.MethodPost, "/api/requests", s.NurseToken, dto.CreateEquipmentRequestDTO{
		EquipmentID: item.ID,
		Reason:      "Night shift",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var request entities.EquipmentRequest
	s.decode(rec, &request)

	path := fmt.Sprintf("/api/requests/%s/status", request.ID)
	rec = s.do(http.MethodPatch, path, s.LogisticsToken, dto.UpdateRequestStatusDTO{Status: "denied"})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPatch, path, s.LogisticsToken, dto.UpdateRequestStatusDTO{Status: "approved"})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *LedgerFlowSuite) TestCategoryInUseConflict() {
	rec := s.do(http.MethodPost, "/api/categories", s.LogisticsToken, dto.CreateCategoryDTO{Name: "Monitoring"})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var category entities.EquipmentCategory
	s.decode(rec, &category)

	s.createMonitor()

	rec = s.do(http.MethodDelete, "/api/categories/"+category.ID, s.LogisticsToken, nil)
	s.Equal(http.StatusConflict, rec.Code)
	s.Len(s.Ledger.ListCategories(), 1)
}

func (s *LedgerFlowSuite) TestValidationAndNotFound() {
	rec := s.do(http.MethodPatch, "/api/equipment/missing/status", s.LogisticsToken, dto.UpdateEquipmentStatusDTO{Status: "broken"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPatch, "/api/equipment/missing/status", s.LogisticsToken, dto.UpdateEquipmentStatusDTO{Status: "damaged"})
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/dashboard?days=12", s.LogisticsToken, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *LedgerFlowSuite) TestDashboardAndMaintenance() {
	s.createMonitor()

	rec := s.do(http.MethodPost, "/api/maintenance/notify", s.LogisticsToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var created []entities.Notification
	s.decode(rec, &created)
	s.Len(created, 1)

	rec = s.do(http.MethodGet, "/api/dashboard", s.LogisticsToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var dashboard dto.DashboardDTO
	s.decode(rec, &dashboard)
	s.Equal(1, dashboard.Equipment.Total)
	s.Equal(1, dashboard.Maintenance.DueSoon)
}

func (s *LedgerFlowSuite) TestSendNotification() {
	rec := s.do(http.MethodPost, "/api/notifications", s.LogisticsToken, dto.CreateNotificationDTO{
		UserID: "2", Title: "Equipment Available", Message: "Your monitor is ready.", Type: "equipment_available",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/notifications", s.LogisticsToken, dto.CreateNotificationDTO{
		UserID: "2", Title: "x", Message: "x", Type: "pager",
	})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/notifications", s.NurseToken, nil)
	var notes []entities.Notification
	s.decode(rec, &notes)
	s.Len(notes, 1)
}

func TestLedgerFlowSuite(t *testing.T) {
	suite.Run(t, new(LedgerFlowSuite))
}

func (s *LedgerFlowSuite) TestImportFailureReportsCommittedRows() {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Name", "Serial Number", "Location"},
		{"Wheelchair", "WC-1", "Lobby"},
		{"Stretcher", "ST-1", "ER"},
		{"Walker", "WK-1", "Rehab"},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		s.Require().NoError(err)
		s.Require().NoError(f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	workbook, err := f.WriteToBuffer()
	s.Require().NoError(err)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "inventory.xlsx")
	s.Require().NoError(err)
	_, err = part.Write(workbook.Bytes())
	s.Require().NoError(err)
	s.Require().NoError(form.Close())

	s.Store.failFrom = s.Store.saves + 2

	req := httptest.NewRequest(http.MethodPost, "/api/equipment/import", &body)
	req.Header.Set(echo.HeaderContentType, form.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.LogisticsToken)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusInternalServerError, rec.Code, rec.Body.String())

	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	s.False(env.Status)
	var partial dto.ImportResultDTO
	s.Require().NoError(json.Unmarshal(env.Body, &partial))
	s.Equal(1, partial.Imported)
	s.Require().Len(partial.IDs, 1)

	items := s.Ledger.ListEquipment(ledger.EquipmentFilter{})
	s.Require().Len(items, 1)
	s.Equal(partial.IDs[0], items[0].ID)
	s.Equal("Wheelchair", items[0].Name)
}
