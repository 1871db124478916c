package ledger

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/events"
	"equipment-tracker/pkg/eventbus"
)

type state struct {
	equipment     []entities.Equipment
	history       []entities.HistoryEntry
	categories    []entities.EquipmentCategory
	damageReports []entities.DamageReport
	requests      []entities.EquipmentRequest
	notifications []entities.Notification
}

// tx is a staged copy of the state. A collection is cloned the first time it
// is written, so the live state never sees a failed transition.
type tx struct {
	st     state
	dirty  map[string]bool
	now    time.Time
	newID  IDGenerator
	system Actor
	toasts []entities.Toast
	events []eventbus.Event
}

// effect is one step of a ledger transition.
type effect func(t *tx) error

func (t *tx) apply(effects ...effect) error {
	for _, e := range effects {
		if err := e(t); err != nil {
			return err
		}
	}
	return nil
}

func own[T any](t *tx, key string, items *[]T) {
	if t.dirty[key] {
		return
	}
	*items = slices.Clone(*items)
	t.dirty[key] = true
}

func (t *tx) equipmentIndex(id string) int {
	return slices.IndexFunc(t.st.equipment, func(e entities.Equipment) bool { return e.ID == id })
}

func (t *tx) categoryIndex(id string) int {
	return slices.IndexFunc(t.st.categories, func(c entities.EquipmentCategory) bool { return c.ID == id })
}

func (t *tx) damageReportIndex(id string) int {
	return slices.IndexFunc(t.st.damageReports, func(r entities.DamageReport) bool { return r.ID == id })
}

func (t *tx) requestIndex(id string) int {
	return slices.IndexFunc(t.st.requests, func(r entities.EquipmentRequest) bool { return r.ID == id })
}

func (t *tx) notificationIndex(id string) int {
	return slices.IndexFunc(t.st.notifications, func(n entities.Notification) bool { return n.ID == id })
}

func (t *tx) putEquipment(i int, item entities.Equipment) {
	own(t, KeyEquipment, &t.st.equipment)
	t.st.equipment[i] = item
}

func (t *tx) putCategory(i int, category entities.EquipmentCategory) {
	own(t, KeyCategories, &t.st.categories)
	t.st.categories[i] = category
}

func (t *tx) putDamageReport(i int, report entities.DamageReport) {
	own(t, KeyDamageReports, &t.st.damageReports)
	t.st.damageReports[i] = report
}

func (t *tx) putRequest(i int, request entities.EquipmentRequest) {
	own(t, KeyEquipmentRequests, &t.st.requests)
	t.st.requests[i] = request
}

func (t *tx) putNotification(i int, n entities.Notification) {
	own(t, KeyNotifications, &t.st.notifications)
	t.st.notifications[i] = n
}

// appendHistory stamps id and timestamp on entry and records it.
func (t *tx) appendHistory(entry entities.HistoryEntry) entities.HistoryEntry {
	own(t, KeyHistory, &t.st.history)
	entry.ID = t.newID()
	entry.Timestamp = t.now
	t.st.history = append(t.st.history, entry)
	t.events = append(t.events, events.HistoryAppendedEvent{Entry: entry.Clone()})
	return entry
}

func (t *tx) toast(title, description string) {
	t.toasts = append(t.toasts, entities.Toast{
		Title:       title,
		Description: description,
		Variant:     entities.ToastDefault,
	})
}

func (t *tx) encode() (map[string][]byte, error) {
	snapshots := make(map[string][]byte, len(t.dirty))
	for key := range t.dirty {
		var (
			data []byte
			err  error
		)
		switch key {
		case KeyEquipment:
			data, err = encode(t.st.equipment)
		case KeyHistory:
			data, err = encode(t.st.history)
		case KeyCategories:
			data, err = encode(t.st.categories)
		case KeyDamageReports:
			data, err = encode(t.st.damageReports)
		case KeyEquipmentRequests:
			data, err = encode(t.st.requests)
		case KeyNotifications:
			data, err = encode(t.st.notifications)
		default:
			err = fmt.Errorf("unknown collection %q", key)
		}
		if err != nil {
			return nil, fmt.Errorf("encode %s snapshot: %w", key, err)
		}
		snapshots[key] = data
	}
	return snapshots, nil
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// appendNotes adds notes as a new line of the existing log. Empty notes leave it unchanged.
func appendNotes(existing, notes string) string {
	if notes == "" {
		return existing
	}
	if existing == "" {
		return notes
	}
	return existing + "\n" + notes
}


func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
