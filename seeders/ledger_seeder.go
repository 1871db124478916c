package seeders

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"equipment-tracker/internal/ledger"
	"equipment-tracker/pkg/constants"
)

type categorySeed struct {
	Name        string
	Description string
}

var categorySeeds = []categorySeed{
	{Name: "Monitoring", Description: "Patient vital sign monitors"},
	{Name: "Infusion", Description: "Infusion and syringe pumps"},
	{Name: "Respiratory", Description: "Ventilators and oxygen concentrators"},
	{Name: "Diagnostic", Description: "Imaging and diagnostic devices"},
	{Name: "Mobility", Description: "Wheelchairs and patient lifts"},
}

type equipmentSeed struct {
	Name                string
	Category            string
	SerialNumber        string
	Location            string
	LastMaintenanceDate string
	NextMaintenanceDate string
	PurchaseDate        string
	AssignTo            string
}

var equipmentSeeds = []equipmentSeed{
	{Name: "Patient Monitor X200", Category: "Monitoring", SerialNumber: "PM-X200-0001", Location: "ICU Room 3",
		LastMaintenanceDate: "2024-01-15", NextMaintenanceDate: "2024-07-15", PurchaseDate: "2022-03-10", AssignTo: "2"},
	{Name: "Patient Monitor X200", Category: "Monitoring", SerialNumber: "PM-X200-0002", Location: "Storage B",
		LastMaintenanceDate: "2024-02-01", NextMaintenanceDate: "2024-08-01", PurchaseDate: "2022-03-10"},
	{Name: "Infusion Pump IP-50", Category: "Infusion", SerialNumber: "IP50-1187", Location: "Ward 2",
		LastMaintenanceDate: "2023-11-20", NextMaintenanceDate: "2024-05-20", PurchaseDate: "2021-09-01"},
	{Name: "Ventilator V-900", Category: "Respiratory", SerialNumber: "V900-0042", Location: "ICU Room 1",
		LastMaintenanceDate: "2024-03-05", NextMaintenanceDate: "2024-09-05", PurchaseDate: "2023-01-20"},
	{Name: "Portable Ultrasound", Category: "Diagnostic", SerialNumber: "US-P-3301", Location: "Radiology",
		LastMaintenanceDate: "2023-12-12", NextMaintenanceDate: "2024-06-12", PurchaseDate: "2020-06-15"},
	{Name: "Wheelchair Standard", Category: "Mobility", SerialNumber: "WC-STD-0217", Location: "Main Lobby",
		PurchaseDate: "2019-04-02"},
}

// SeedLedger fills an empty ledger with categories and equipment. A ledger that
// already holds equipment or categories is left alone.
func SeedLedger(ctx context.Context, l *ledger.Ledger, actor ledger.Actor, logger *zap.Logger) error {
	if len(l.ListEquipment(ledger.EquipmentFilter{})) > 0 || len(l.ListCategories()) > 0 {
		logger.Info("ledger already has data, seeding skipped")
		return nil
	}

	categoryIDs := make(map[string]string, len(categorySeeds))
	for _, c := range categorySeeds {
		created, err := l.AddCategory(ctx, ledger.NewCategory{Name: c.Name, Description: c.Description})
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.Name, err)
		}
		categoryIDs[c.Name] = created.ID
	}

	for _, s := range equipmentSeeds {
		categoryID := categoryIDs[s.Category]
		created, err := l.AddEquipment(ctx, ledger.NewEquipment{
			Name:                s.Name,
			CategoryID:          &categoryID,
			Category:            s.Category,
			SerialNumber:        s.SerialNumber,
			Status:              constants.EquipmentAvailable,
			Location:            s.Location,
			LastMaintenanceDate: s.LastMaintenanceDate,
			NextMaintenanceDate: s.NextMaintenanceDate,
			PurchaseDate:        s.PurchaseDate,
		})
		if err != nil {
			return fmt.Errorf("seed equipment %s: %w", s.SerialNumber, err)
		}
		if s.AssignTo == "" {
			continue
		}
		assignee := s.AssignTo
		if _, err := l.AssignEquipment(ctx, created.ID, &assignee, actor, "Initial assignment"); err != nil {
			return fmt.Errorf("seed assignment %s: %w", s.SerialNumber, err)
		}
	}

	logger.Info("ledger seeded",
		zap.Int("categories", len(categorySeeds)),
		zap.Int("equipment", len(equipmentSeeds)),
	)
	return nil
}
