package ledger

import (
	"context"
	"fmt"

	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/constants"
	"equipment-tracker/pkg/utils"
)

// NotifyMaintenanceDue creates a maintenance_due notification for recipientID
// for every item whose next maintenance date falls within windowDays of today,
// overdue items included. Items that already have an unread one for the same
// recipient are skipped.
func (l *Ledger) NotifyMaintenanceDue(ctx context.Context, recipientID string, windowDays int) ([]entities.Notification, error) {
	created := []entities.Notification{}
	err := l.run(ctx, func(t *tx) error {
		today := utils.StartOfDay(t.now)
		limit := today.AddDate(0, 0, windowDays)

		var pending []effect
		for _, item := range t.st.equipment {
			due, ok := utils.ParseDate(item.NextMaintenanceDate)
			if !ok || due.After(limit) {
				continue
			}
			if t.hasUnreadMaintenanceNotice(recipientID, item.ID) {
				continue
			}
			message := fmt.Sprintf("%s is due for maintenance on %s.", item.Name, item.NextMaintenanceDate)
			if due.Before(today) {
				message = fmt.Sprintf("%s maintenance is overdue since %s.", item.Name, item.NextMaintenanceDate)
			}
			n := new(entities.Notification)
			pending = append(pending, createNotification(NewNotification{
				UserID:             recipientID,
				Title:              "Maintenance Due",
				Message:            message,
				Type:               constants.NotificationMaintenanceDue,
				RelatedEquipmentID: utils.ToPtr(item.ID),
			}, n), func(*tx) error {
				created = append(created, *n)
				return nil
			})
		}
		if err := t.apply(pending...); err != nil {
			return err
		}
		t.toast("Maintenance Check", fmt.Sprintf("%d maintenance notification(s) created.", len(created)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (t *tx) hasUnreadMaintenanceNotice(recipientID, equipmentID string) bool {
	for _, n := range t.st.notifications {
		if n.UserID == recipientID &&
			n.Type == constants.NotificationMaintenanceDue &&
			!n.IsRead &&
			n.RelatedEquipmentID != nil && *n.RelatedEquipmentID == equipmentID {
			return true
		}
	}
	return false
}
