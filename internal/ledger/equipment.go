package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/constants"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"
)

type NewEquipment struct {
	Name                string
	CategoryID          *string
	Category            string
	SerialNumber        string
	Status              constants.EquipmentStatus
	Location            string
	AssignedTo          *string
	LastMaintenanceDate string
	NextMaintenanceDate string
	PurchaseDate        string
	Notes               string
}

// EquipmentPatch merges non-nil fields. An empty CategoryID unlinks the
// category. Status, location and assignment are changed only through the
// audited operations.
type EquipmentPatch struct {
	Name                *string
	CategoryID          *string
	SerialNumber        *string
	LastMaintenanceDate *string
	NextMaintenanceDate *string
	PurchaseDate        *string
	Notes               *string
}

type EquipmentFilter struct {
	Search     string
	Status     constants.EquipmentStatus
	CategoryID string
	Location   string
}

func (l *Ledger) AddEquipment(ctx context.Context, in NewEquipment) (entities.Equipment, error) {
	var created entities.Equipment
	err := l.run(ctx, addEquipment(in, &created))
	return created, err
}

func (l *Ledger) UpdateEquipment(ctx context.Context, id string, patch EquipmentPatch) (entities.Equipment, error) {
	var updated entities.Equipment
	err := l.run(ctx, patchEquipment(id, patch, &updated))
	return updated, err
}

func (l *Ledger) UpdateEquipmentStatus(ctx context.Context, id string, status constants.EquipmentStatus, actor Actor, notes string) (entities.Equipment, error) {
	var updated entities.Equipment
	err := l.run(ctx,
		setEquipmentStatus(id, status, actor, notes, &updated),
		func(t *tx) error {
			t.toast("Status Updated", fmt.Sprintf("%s status changed to %s.", updated.Name, status))
			return nil
		},
	)
	return updated, err
}

func (l *Ledger) UpdateEquipmentLocation(ctx context.Context, id, location string, actor Actor, notes string) (entities.Equipment, error) {
	var updated entities.Equipment
	err := l.run(ctx, setEquipmentLocation(id, location, actor, notes, &updated))
	return updated, err
}

// AssignEquipment hands the item to assignee, or returns it to inventory when assignee is nil or empty.
func (l *Ledger) AssignEquipment(ctx context.Context, id string, assignee *string, actor Actor, notes string) (entities.Equipment, error) {
	var updated entities.Equipment
	err := l.run(ctx, assignEquipment(id, assignee, actor, notes, &updated))
	return updated, err
}

func (l *Ledger) GetEquipmentByID(id string) (entities.Equipment, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.st.equipment {
		if item.ID == id {
			return item.Clone(), true
		}
	}
	return entities.Equipment{}, false
}

// GetEquipmentHistoryByID returns the item's audit entries in the order they were recorded.
func (l *Ledger) GetEquipmentHistoryByID(id string) []entities.HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := []entities.HistoryEntry{}
	for _, entry := range l.st.history {
		if entry.EquipmentID == id {
			out = append(out, entry.Clone())
		}
	}
	return out
}

// ListHistory returns every audit entry, newest first.
func (l *Ledger) ListHistory() []entities.HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := entities.CloneAll(l.st.history)
	slices.Reverse(out)
	return out
}

func (l *Ledger) ListEquipment(filter EquipmentFilter) []entities.Equipment {
	l.mu.RLock()
	defer l.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := []entities.Equipment{}
	for _, item := range l.st.equipment {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && (item.CategoryID == nil || *item.CategoryID != filter.CategoryID) {
			continue
		}
		if filter.Location != "" && !strings.EqualFold(item.Location, filter.Location) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.SerialNumber), search) {
			continue
		}
		out = append(out, item.Clone())
	}
	return out
}

func addEquipment(in NewEquipment, out *entities.Equipment) effect {
	return func(t *tx) error {
		item := entities.Equipment{
			ID:                  t.newID(),
			Name:                in.Name,
			CategoryID:          clonePtr(in.CategoryID),
			Category:            in.Category,
			SerialNumber:        in.SerialNumber,
			Status:              in.Status,
			Location:            in.Location,
			AssignedTo:          clonePtr(in.AssignedTo),
			LastMaintenanceDate: in.LastMaintenanceDate,
			NextMaintenanceDate: in.NextMaintenanceDate,
			PurchaseDate:        in.PurchaseDate,
			Notes:               in.Notes,
		}
		if item.Status == "" {
			item.Status = constants.EquipmentAvailable
		}
		t.linkCategory(&item)

		own(t, KeyEquipment, &t.st.equipment)
		t.st.equipment = append(t.st.equipment, item)
		t.toast("Equipment Added", fmt.Sprintf("%s has been added to inventory.", item.Name))
		*out = item.Clone()
		return nil
	}
}

// linkCategory fills whichever half of the category reference is missing.
func (t *tx) linkCategory(item *entities.Equipment) {
	if item.CategoryID != nil {
		if i := t.categoryIndex(*item.CategoryID); i >= 0 {
			item.Category = t.st.categories[i].Name
		}
		return
	}
	if item.Category == "" {
		return
	}
	for _, c := range t.st.categories {
		if c.Name == item.Category {
			item.CategoryID = utils.ToPtr(c.ID)
			return
		}
	}
}

func patchEquipment(id string, patch EquipmentPatch, out *entities.Equipment) effect {
	return func(t *tx) error {
		i := t.equipmentIndex(id)
		if i < 0 {
			return fmt.Errorf("equipment %s: %w", id, apperrors.ErrNotFound)
		}
		item := t.st.equipment[i]

		switch {
		case patch.CategoryID == nil:
		case *patch.CategoryID == "":
			item.CategoryID = nil
			item.Category = ""
		default:
			ci := t.categoryIndex(*patch.CategoryID)
			if ci < 0 {
				return fmt.Errorf("category %s: %w", *patch.CategoryID, apperrors.ErrNotFound)
			}
			item.CategoryID = utils.ToPtr(t.st.categories[ci].ID)
			item.Category = t.st.categories[ci].Name
		}
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.SerialNumber != nil {
			item.SerialNumber = *patch.SerialNumber
		}
		if patch.LastMaintenanceDate != nil {
			item.LastMaintenanceDate = *patch.LastMaintenanceDate
		}
		if patch.NextMaintenanceDate != nil {
			item.NextMaintenanceDate = *patch.NextMaintenanceDate
		}
		if patch.PurchaseDate != nil {
			item.PurchaseDate = *patch.PurchaseDate
		}
		if patch.Notes != nil {
			item.Notes = *patch.Notes
		}

		t.putEquipment(i, item)
		t.toast("Equipment Updated", fmt.Sprintf("%s details have been updated.", item.Name))
		*out = item.Clone()
		return nil
	}
}

// setEquipmentStatus writes the status and records a status_changed entry. It
// raises no toast of its own because cascades reuse it.
func setEquipmentStatus(id string, status constants.EquipmentStatus, actor Actor, notes string, out *entities.Equipment) effect {
	return func(t *tx) error {
		i := t.equipmentIndex(id)
		if i < 0 {
			return fmt.Errorf("equipment %s: %w", id, apperrors.ErrNotFound)
		}
		item := t.st.equipment[i]
		from := item.Status
		item.Status = status
		t.putEquipment(i, item)

		t.appendHistory(entities.HistoryEntry{
			EquipmentID: id,
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      constants.ActionStatusChanged,
			FromStatus:  utils.ToPtr(from),
			ToStatus:    utils.ToPtr(status),
			Notes:       notes,
		})
		if out != nil {
			*out = item.Clone()
		}
		return nil
	}
}

func setEquipmentLocation(id, location string, actor Actor, notes string, out *entities.Equipment) effect {
	return func(t *tx) error {
		i := t.equipmentIndex(id)
		if i < 0 {
			return fmt.Errorf("equipment %s: %w", id, apperrors.ErrNotFound)
		}
		item := t.st.equipment[i]
		from := item.Location
		item.Location = location
		t.putEquipment(i, item)

		t.appendHistory(entities.HistoryEntry{
			EquipmentID:  id,
			UserID:       actor.ID,
			UserName:     actor.Name,
			Action:       constants.ActionMoved,
			FromLocation: utils.ToPtr(from),
			ToLocation:   utils.ToPtr(location),
			Notes:        notes,
		})
		t.toast("Location Updated", fmt.Sprintf("%s moved to %s.", item.Name, location))
		*out = item.Clone()
		return nil
	}
}

func assignEquipment(id string, assignee *string, actor Actor, notes string, out *entities.Equipment) effect {
	return func(t *tx) error {
		i := t.equipmentIndex(id)
		if i < 0 {
			return fmt.Errorf("equipment %s: %w", id, apperrors.ErrNotFound)
		}
		item := t.st.equipment[i]
		from := item.Status

		assigning := assignee != nil && *assignee != ""
		action := constants.ActionReturned
		if assigning {
			item.AssignedTo = utils.ToPtr(*assignee)
			item.Status = constants.EquipmentInUse
			action = constants.ActionAssigned
		} else {
			item.AssignedTo = nil
			item.Status = constants.EquipmentAvailable
		}
		t.putEquipment(i, item)

		t.appendHistory(entities.HistoryEntry{
			EquipmentID: id,
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      action,
			FromStatus:  utils.ToPtr(from),
			ToStatus:    utils.ToPtr(item.Status),
			Notes:       notes,
		})
		if assigning {
			t.toast("Equipment Assigned", fmt.Sprintf("%s has been assigned.", item.Name))
		} else {
			t.toast("Equipment Returned", fmt.Sprintf("%s has been returned to inventory.", item.Name))
		}
		*out = item.Clone()
		return nil
	}
}
