package ledger

import (
	"context"
	"fmt"
	"time"

	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/constants"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"
)

const repairedNote = "Automatically marked as available after repair"

type NewDamageReport struct {
	EquipmentID  string
	ReporterID   string
	ReporterName string
	ReportDate   time.Time
	Description  string
	Notes        string
}

type DamageReportFilter struct {
	EquipmentID string
	ReporterID  string
	Status      constants.DamageReportStatus
}

// ReportDamage files a report in the reported state and marks the equipment
// damaged, both in one transition.
func (l *Ledger) ReportDamage(ctx context.Context, in NewDamageReport) (entities.DamageReport, error) {
	var report entities.DamageReport
	reporter := Actor{ID: in.ReporterID, Name: in.ReporterName}
	err := l.run(ctx,
		createDamageReport(in, &report),
		setEquipmentStatus(in.EquipmentID, constants.EquipmentDamaged, reporter, in.Description, nil),
		func(t *tx) error {
			t.toast("Damage Reported", "Your damage report has been submitted successfully.")
			return nil
		},
	)
	return report, err
}

func createDamageReport(in NewDamageReport, out *entities.DamageReport) effect {
	return func(t *tx) error {
		if t.equipmentIndex(in.EquipmentID) < 0 {
			return fmt.Errorf("equipment %s: %w", in.EquipmentID, apperrors.ErrNotFound)
		}
		reportDate := in.ReportDate
		if reportDate.IsZero() {
			reportDate = t.now
		}
		report := entities.DamageReport{
			ID:           t.newID(),
			EquipmentID:  in.EquipmentID,
			ReporterID:   in.ReporterID,
			ReporterName: in.ReporterName,
			ReportDate:   reportDate,
			Description:  in.Description,
			Status:       constants.DamageReported,
			Notes:        in.Notes,
		}
		own(t, KeyDamageReports, &t.st.damageReports)
		t.st.damageReports = append(t.st.damageReports, report)
		*out = report.Clone()
		return nil
	}
}

// UpdateDamageReportStatus writes status and appends notes. Moving into
// resolved stamps the resolved date, returns the equipment to available and
// notifies the reporter; repeating resolved does none of that again.
func (l *Ledger) UpdateDamageReportStatus(ctx context.Context, id string, status constants.DamageReportStatus, notes string) (entities.DamageReport, error) {
	var report entities.DamageReport
	err := l.run(ctx,
		setDamageReportStatus(id, status, notes, &report),
		func(t *tx) error {
			t.toast("Report Status Updated", fmt.Sprintf("Damage report status changed to %s.", status))
			return nil
		},
	)
	return report, err
}

func setDamageReportStatus(id string, status constants.DamageReportStatus, notes string, out *entities.DamageReport) effect {
	return func(t *tx) error {
		i := t.damageReportIndex(id)
		if i < 0 {
			return fmt.Errorf("damage report %s: %w", id, apperrors.ErrNotFound)
		}
		report := t.st.damageReports[i]
		resolving := report.Status != status && status == constants.DamageResolved

		report.Status = status
		report.Notes = appendNotes(report.Notes, notes)
		if resolving {
			report.ResolvedDate = utils.ToPtr(t.now)
		}
		t.putDamageReport(i, report)
		*out = report.Clone()

		if resolving {
			return t.apply(resolveRepair(report))
		}
		return nil
	}
}

// resolveRepair is skipped entirely when the equipment no longer exists.
func resolveRepair(report entities.DamageReport) effect {
	return func(t *tx) error {
		i := t.equipmentIndex(report.EquipmentID)
		if i < 0 {
			return nil
		}
		item := t.st.equipment[i]
		return t.apply(
			setEquipmentStatus(item.ID, constants.EquipmentAvailable, t.system, repairedNote, nil),
			createNotification(NewNotification{
				UserID:             report.ReporterID,
				Title:              "Equipment Repaired",
				Message:            fmt.Sprintf("%s has been repaired and is now available.", item.Name),
				Type:               constants.NotificationEquipmentRepaired,
				RelatedEquipmentID: utils.ToPtr(item.ID),
			}, nil),
		)
	}
}

func (l *Ledger) ListDamageReports(filter DamageReportFilter) []entities.DamageReport {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := []entities.DamageReport{}
	for _, r := range l.st.damageReports {
		if filter.EquipmentID != "" && r.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.ReporterID != "" && r.ReporterID != filter.ReporterID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}
