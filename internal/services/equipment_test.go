package services

import (
	"context"
	"errors"
	"testing"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/ledger"
	"equipment-tracker/pkg/constants"
	apperrors "equipment-tracker/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentServiceLifecycle(t *testing.T) {
	l := newTestLedger(t)
	svc := NewEquipmentService(l, nop)
	ctx := staffCtx()

	item, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		Name: "Infusion Pump", SerialNumber: "IP-1", Location: "Ward 2",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentAvailable, item.Status)

	updated, err := svc.UpdateEquipment(ctx, item.ID, dto.UpdateEquipmentDTO{
		Notes: null.StringFrom("Checked"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Infusion Pump", updated.Name)
	assert.Equal(t, "Checked", updated.Notes)

	assigned, err := svc.Assign(ctx, item.ID, dto.AssignEquipmentDTO{AssignedTo: null.StringFrom("2")})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentInUse, assigned.Status)

	returned, err := svc.Assign(ctx, item.ID, dto.AssignEquipmentDTO{})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentAvailable, returned.Status)
	assert.Nil(t, returned.AssignedTo)

	moved, err := svc.UpdateLocation(ctx, item.ID, dto.UpdateEquipmentLocationDTO{Location: "ICU"})
	require.NoError(t, err)
	assert.Equal(t, "ICU", moved.Location)

	history, err := svc.GetHistory(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, constants.ActionAssigned, history[0].Action)
	assert.Equal(t, "Sarah Johnson", history[0].UserName)
	assert.Equal(t, constants.ActionMoved, history[2].Action)

	assert.Len(t, svc.GetEquipments(ctx, dto.EquipmentFilterDTO{Search: "pump"}), 1)
	assert.Empty(t, svc.GetEquipments(ctx, dto.EquipmentFilterDTO{Status: "damaged"}))
}

func TestEquipmentServiceNeedsActor(t *testing.T) {
	l := newTestLedger(t)
	svc := NewEquipmentService(l, nop)

	item, err := svc.CreateEquipment(staffCtx(), dto.CreateEquipmentDTO{Name: "Bed", SerialNumber: "B-1", Location: "Ward 1"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), item.ID, dto.UpdateEquipmentStatusDTO{Status: "damaged"})
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)

	found, err := svc.FindEquipment(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentAvailable, found.Status)
}

func TestEquipmentServiceNotFound(t *testing.T) {
	svc := NewEquipmentService(newTestLedger(t), nop)

	_, err := svc.FindEquipment(staffCtx(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = svc.GetHistory(staffCtx(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestDamageAndRequestServices(t *testing.T) {
	l := newTestLedger(t)
	equipment := NewEquipmentService(l, nop)
	damage := NewDamageReportService(l, nop)
	requests := NewEquipmentRequestService(l, nop)
	notifications := NewNotificationService(l, 30, nop)

	item, err := equipment.CreateEquipment(staffCtx(), dto.CreateEquipmentDTO{Name: "Ventilator", SerialNumber: "V-1", Location: "ICU"})
	require.NoError(t, err)

	report, err := damage.ReportDamage(nurseCtx(), dto.CreateDamageReportDTO{
		EquipmentID: item.ID, ReportDate: "2024-05-09", Description: "Alarm fails",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-09", report.ReportDate.Format(constants.DateLayout))
	assert.Len(t, damage.GetDamageReports(staffCtx(), dto.DamageReportFilterDTO{ReporterID: "2"}), 1)

	_, err = damage.UpdateStatus(staffCtx(), report.ID, dto.UpdateDamageReportStatusDTO{Status: "resolved"})
	require.NoError(t, err)

	request, err := requests.CreateRequest(nurseCtx(), dto.CreateEquipmentRequestDTO{EquipmentID: item.ID, Reason: "Transfer"})
	require.NoError(t, err)
	assert.Equal(t, constants.RequestPending, request.Status)

	approved, err := requests.UpdateStatus(staffCtx(), request.ID, dto.UpdateRequestStatusDTO{Status: "approved"})
	require.NoError(t, err)
	assert.NotNil(t, approved.ApprovedDate)

	unread, err := notifications.GetNotifications(nurseCtx(), dto.NotificationFilterDTO{Unread: true})
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, constants.NotificationRequestApproved, unread[0].Type)

	read, err := notifications.MarkAsRead(nurseCtx(), unread[0].ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	updated, err := notifications.MarkAllAsRead(nurseCtx())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}

func TestCreateNotification(t *testing.T) {
	l := newTestLedger(t)
	svc := NewNotificationService(l, 30, nop)

	item, err := l.AddEquipment(staffCtx(), ledger.NewEquipment{Name: "Monitor", SerialNumber: "M-1", Location: "ICU"})
	require.NoError(t, err)

	n, err := svc.CreateNotification(staffCtx(), dto.CreateNotificationDTO{
		UserID: "2", Title: "Equipment Available", Message: "Monitor is back in stock.",
		Type: "equipment_available", RelatedEquipmentID: &item.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.NotificationEquipmentAvailable, n.Type)
	assert.False(t, n.IsRead)

	missing := "missing"
	_, err = svc.CreateNotification(staffCtx(), dto.CreateNotificationDTO{
		UserID: "2", Title: "x", Message: "x", Type: "equipment_available", RelatedEquipmentID: &missing,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Len(t, l.ListNotificationsForUser("2"), 1)
}
