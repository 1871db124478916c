package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/ledger"
	"equipment-tracker/pkg/constants"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	inventorySheet = "Inventory"
	historySheet   = "History"
)

var inventoryHeaders = []interface{}{
	"ID", "Name", "Category", "Serial Number", "Status", "Location", "Assigned To",
	"Last Maintenance", "Next Maintenance", "Purchase Date", "Notes",
}

var historyHeaders = []interface{}{
	"ID", "Equipment ID", "Timestamp", "User", "Action", "From Status", "To Status",
	"From Location", "To Location", "Notes",
}

type EquipmentExcelServiceInterface interface {
	Export(ctx context.Context) (*excelize.File, error)
	Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error)
}

type EquipmentExcelService struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

func NewEquipmentExcelService(l *ledger.Ledger, logger *zap.Logger) EquipmentExcelServiceInterface {
	return &EquipmentExcelService{ledger: l, logger: logger}
}

// Export writes the inventory and the full audit history into one workbook.
func (s *EquipmentExcelService) Export(ctx context.Context) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(historySheet); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rows := [][]interface{}{}
	for _, item := range s.ledger.ListEquipment(ledger.EquipmentFilter{}) {
		rows = append(rows, []interface{}{
			item.ID, item.Name, item.Category, item.SerialNumber, string(item.Status), item.Location, utils.SafeDeref(item.AssignedTo),
			item.LastMaintenanceDate, item.NextMaintenanceDate, item.PurchaseDate, item.Notes,
		})
	}
	if err := writeSheet(f, inventorySheet, inventoryHeaders, rows, style); err != nil {
		return nil, err
	}

	rows = rows[:0]
	for _, h := range s.ledger.ListHistory() {
		rows = append(rows, []interface{}{
			h.ID, h.EquipmentID, h.Timestamp.Format("2006-01-02 15:04:05"), h.UserName, string(h.Action),
			string(utils.SafeDeref(h.FromStatus)), string(utils.SafeDeref(h.ToStatus)),
			utils.SafeDeref(h.FromLocation), utils.SafeDeref(h.ToLocation), h.Notes,
		})
	}
	if err := writeSheet(f, historySheet, historyHeaders, rows, style); err != nil {
		return nil, err
	}

	s.logger.Info("inventory exported")
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// Import reads the first sheet that has Name and Serial Number headers and adds
// one equipment item per row. Rows without a name are skipped.
func (s *EquipmentExcelService) Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("file is not a valid xlsx workbook: %v", err)
	}
	defer f.Close()

	var (
		rows    [][]string
		columns map[string]int
		header  = -1
	)
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for i, row := range sheetRows {
			if cols := headerColumns(row); cols != nil {
				rows, columns, header = sheetRows, cols, i
				break
			}
		}
		if header >= 0 {
			break
		}
	}
	if header < 0 {
		return nil, apperrors.NewInvalidInputError("no header row with %q and %q columns found", "Name", "Serial Number")
	}

	result := &dto.ImportResultDTO{IDs: []string{}}
	for i, row := range rows[header+1:] {
		cell := func(name string) string {
			col, ok := columns[name]
			if !ok || col >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[col])
		}
		if cell("name") == "" {
			result.Skipped++
			continue
		}

		// Imported rows carry no assignee, so they cannot start in use.
		status := constants.EquipmentStatus(strings.ToLower(cell("status")))
		if !constants.IsEquipmentStatus(status) || status == constants.EquipmentInUse {
			status = constants.EquipmentAvailable
		}
		item, err := s.ledger.AddEquipment(ctx, ledger.NewEquipment{
			Name:                cell("name"),
			Category:            cell("category"),
			SerialNumber:        cell("serial number"),
			Status:              status,
			Location:            cell("location"),
			LastMaintenanceDate: dateCell(cell("last maintenance")),
			NextMaintenanceDate: dateCell(cell("next maintenance")),
			PurchaseDate:        dateCell(cell("purchase date")),
			Notes:               cell("notes"),
		})
		if err != nil {
			return result, fmt.Errorf("import row %d: %w", header+i+2, err)
		}
		result.Imported++
		result.IDs = append(result.IDs, item.ID)
	}

	s.logger.Info("inventory imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

// headerColumns maps lower-cased header names to column indexes, or returns nil
// when the row lacks the required columns.
func headerColumns(row []string) map[string]int {
	cols := make(map[string]int, len(row))
	for i, name := range row {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	_, hasName := cols["name"]
	_, hasSerial := cols["serial number"]
	if !hasName || !hasSerial {
		return nil
	}
	return cols
}

func dateCell(value string) string {
	if _, ok := utils.ParseDate(value); ok {
		return value
	}
	return ""
}
