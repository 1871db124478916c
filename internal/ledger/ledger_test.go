package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/events"
	"equipment-tracker/pkg/constants"
	"equipment-tracker/pkg/eventbus"
	"equipment-tracker/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	failErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *fakeStore) SaveAll(_ context.Context, snapshots map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.saves++
	for k, v := range snapshots {
		s.data[k] = v
	}
	return nil
}

type recordingToaster struct {
	mu     sync.Mutex
	toasts []entities.Toast
}

func (r *recordingToaster) Toast(_ context.Context, toast entities.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

func (r *recordingToaster) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.toasts))
	for _, t := range r.toasts {
		out = append(out, t.Title)
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (r *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type fixture struct {
	ledger    *Ledger
	store     *fakeStore
	toaster   *recordingToaster
	publisher *recordingPublisher
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:     newFakeStore(),
		toaster:   &recordingToaster{},
		publisher: &recordingPublisher{},
		now:       fixedNow,
	}
	seq := 0
	f.ledger = New(f.store,
		WithClock(ClockFunc(func() time.Time { return f.now })),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
		WithToaster(f.toaster),
		WithPublisher(f.publisher),
		WithSystemActor("system", "System"),
	)
	return f
}

var (
	logistics = Actor{ID: "log-1", Name: "Log"}
	nurse     = Actor{ID: "n1", Name: "Nora"}
)

func (f *fixture) addMonitor(t *testing.T) entities.Equipment {
	t.Helper()
	item, err := f.ledger.AddEquipment(context.Background(), NewEquipment{
		Name:         "Monitor",
		Category:     "Vitals",
		SerialNumber: "SN1",
		Location:     "ER",
		Status:       constants.EquipmentAvailable,
	})
	require.NoError(t, err)
	return item
}

// snapshot captures every collection for before/after comparisons.
func (f *fixture) snapshot() state {
	f.ledger.mu.RLock()
	defer f.ledger.mu.RUnlock()
	return f.ledger.st
}

func TestLoad_EmptyStoreGivesEmptyCollections(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledger.Load(context.Background()))

	assert.Empty(t, f.ledger.ListEquipment(EquipmentFilter{}))
	assert.Empty(t, f.ledger.ListHistory())
	assert.Empty(t, f.ledger.ListCategories())
	assert.Empty(t, f.ledger.ListDamageReports(DamageReportFilter{}))
	assert.Empty(t, f.ledger.ListRequests(RequestFilter{}))
	assert.Empty(t, f.ledger.ListNotificationsForUser("n1"))
}

func TestLoad_RestoresSavedState(t *testing.T) {
	f := newFixture(t)
	item := f.addMonitor(t)
	_, err := f.ledger.AssignEquipment(context.Background(), item.ID, utils.ToPtr("nurse-1"), logistics, "for shift")
	require.NoError(t, err)

	reloaded := New(f.store)
	require.NoError(t, reloaded.Load(context.Background()))

	got, ok := reloaded.GetEquipmentByID(item.ID)
	require.True(t, ok)
	assert.Equal(t, constants.EquipmentInUse, got.Status)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, "nurse-1", *got.AssignedTo)
	assert.Len(t, reloaded.GetEquipmentHistoryByID(item.ID), 1)
}

func TestCommit_SavesOnlyChangedCollections(t *testing.T) {
	f := newFixture(t)
	f.addMonitor(t)

	assert.Contains(t, f.store.data, KeyEquipment)
	assert.NotContains(t, f.store.data, KeyHistory)

	var saved []entities.Equipment
	require.NoError(t, json.Unmarshal(f.store.data[KeyEquipment], &saved))
	assert.Len(t, saved, 1)
}

func TestCommit_StoreFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	item := f.addMonitor(t)
	before := f.snapshot()
	toastsBefore := len(f.toaster.titles())

	f.store.failErr = errors.New("disk full")
	_, err := f.ledger.ReportDamage(context.Background(), NewDamageReport{
		EquipmentID:  item.ID,
		ReporterID:   "n1",
		ReporterName: "Nora",
		Description:  "screen cracked",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")

	assert.Equal(t, before, f.snapshot())
	got, _ := f.ledger.GetEquipmentByID(item.ID)
	assert.Equal(t, constants.EquipmentAvailable, got.Status)
	assert.Len(t, f.toaster.titles(), toastsBefore)
}

func TestEventsPublishedAfterCommit(t *testing.T) {
	f := newFixture(t)
	item := f.addMonitor(t)
	_, err := f.ledger.UpdateEquipmentStatus(context.Background(), item.ID, constants.EquipmentDamaged, logistics, "dropped")
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	ev, ok := f.publisher.events[0].(events.HistoryAppendedEvent)
	require.True(t, ok)
	assert.Equal(t, item.ID, ev.Entry.EquipmentID)
	assert.Equal(t, fixedNow, ev.Entry.Timestamp)
}

func TestConcurrentMutationsAreSerialised(t *testing.T) {
	f := newFixture(t)
	item := f.addMonitor(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.ledger.UpdateEquipmentLocation(context.Background(), item.ID, fmt.Sprintf("Ward %d", i), logistics, "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	history := f.ledger.GetEquipmentHistoryByID(item.ID)
	require.Len(t, history, 20)
	for i := 1; i < len(history); i++ {
		assert.Equal(t, *history[i-1].ToLocation, *history[i].FromLocation)
	}
}
