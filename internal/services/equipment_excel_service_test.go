package services

import (
	"bytes"
	"testing"

	"equipment-tracker/internal/ledger"
	"equipment-tracker/pkg/constants"
	apperrors "equipment-tracker/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelExportImportRoundTrip(t *testing.T) {
	source := newTestLedger(t)
	ctx := staffCtx()

	monitor, err := source.AddEquipment(ctx, ledger.NewEquipment{
		Name: "Monitor", Category: "Monitoring", SerialNumber: "M-1", Location: "ICU", NextMaintenanceDate: "2024-06-01",
	})
	require.NoError(t, err)
	_, err = source.AddEquipment(ctx, ledger.NewEquipment{
		Name: "Pump", SerialNumber: "P-1", Location: "Ward 2", Status: constants.EquipmentDamaged,
	})
	require.NoError(t, err)
	assignee := "2"
	_, err = source.AssignEquipment(ctx, monitor.ID, &assignee, ledger.Actor{ID: "1", Name: "Sarah Johnson"}, "")
	require.NoError(t, err)

	f, err := NewEquipmentExcelService(source, nop).Export(ctx)
	require.NoError(t, err)
	history, err := f.GetRows(historySheet)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	target := newTestLedger(t)
	res, err := NewEquipmentExcelService(target, nop).Import(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 0, res.Skipped)

	imported := target.ListEquipment(ledger.EquipmentFilter{Search: "M-1"})
	require.Len(t, imported, 1)
	assert.Equal(t, constants.EquipmentAvailable, imported[0].Status)
	assert.Nil(t, imported[0].AssignedTo)
	assert.Equal(t, "2024-06-01", imported[0].NextMaintenanceDate)

	damaged := target.ListEquipment(ledger.EquipmentFilter{Status: constants.EquipmentDamaged})
	assert.Len(t, damaged, 1)
}

func TestExcelImportSkipsRowsWithoutName(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Inventory import"},
		{"Name", "Serial Number", "Status", "Location", "Next Maintenance"},
		{"Wheelchair", "WC-1", "broken", "Lobby", "not a date"},
		{"", "WC-2", "available", "Lobby", ""},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	l := newTestLedger(t)
	res, err := NewEquipmentExcelService(l, nop).Import(staffCtx(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)

	items := l.ListEquipment(ledger.EquipmentFilter{})
	require.Len(t, items, 1)
	assert.Equal(t, constants.EquipmentAvailable, items[0].Status)
	assert.Empty(t, items[0].NextMaintenanceDate)
}

func TestExcelImportRejectsInvalidFiles(t *testing.T) {
	svc := NewEquipmentExcelService(newTestLedger(t), nop)

	_, err := svc.Import(staffCtx(), bytes.NewReader([]byte("not a workbook")))
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Something else"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	_, err = svc.Import(staffCtx(), buf)
	assert.ErrorAs(t, err, &invalid)
}
