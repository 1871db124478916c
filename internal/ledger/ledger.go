package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/eventbus"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot keys, one per collection.
const (
	KeyEquipment         = "equipment"
	KeyHistory           = "history"
	KeyCategories        = "categories"
	KeyDamageReports     = "damageReports"
	KeyEquipmentRequests = "equipmentRequests"
	KeyNotifications     = "notifications"
)

var Keys = []string{
	KeyEquipment,
	KeyHistory,
	KeyCategories,
	KeyDamageReports,
	KeyEquipmentRequests,
	KeyNotifications,
}

// SnapshotStore persists whole collections as JSON arrays. Load returns a nil
// payload for a key that was never saved.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	SaveAll(ctx context.Context, snapshots map[string][]byte) error
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type IDGenerator func() string

type Toaster interface {
	Toast(ctx context.Context, toast entities.Toast)
}

type Publisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// Actor is the user a mutation is attributed to. The ledger trusts it as given.
type Actor struct {
	ID   string
	Name string
}

type Option func(*Ledger)

func WithClock(clock Clock) Option {
	return func(l *Ledger) { l.clock = clock }
}

func WithIDGenerator(gen IDGenerator) Option {
	return func(l *Ledger) { l.newID = gen }
}

func WithToaster(toaster Toaster) Option {
	return func(l *Ledger) { l.toaster = toaster }
}

func WithPublisher(publisher Publisher) Option {
	return func(l *Ledger) { l.publisher = publisher }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithSystemActor sets the actor recorded on automatic cascades such as a repair resolution.
func WithSystemActor(id, name string) Option {
	return func(l *Ledger) { l.system = Actor{ID: id, Name: name} }
}

// Ledger owns the six equipment collections. Every mutation runs under mu,
// is applied to a staged copy and becomes visible only after the store saved it.
type Ledger struct {
	mu        sync.RWMutex
	st        state
	store     SnapshotStore
	clock     Clock
	newID     IDGenerator
	toaster   Toaster
	publisher Publisher
	system    Actor
	logger    *zap.Logger
}

func New(store SnapshotStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		clock:     ClockFunc(time.Now),
		newID:     uuid.NewString,
		toaster:   nopToaster{},
		publisher: nopPublisher{},
		system:    Actor{ID: "system", Name: "System"},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the in-memory state with the last saved snapshot of every collection.
func (l *Ledger) Load(ctx context.Context) error {
	var st state
	if err := load(ctx, l.store, KeyEquipment, &st.equipment); err != nil {
		return err
	}
	if err := load(ctx, l.store, KeyHistory, &st.history); err != nil {
		return err
	}
	if err := load(ctx, l.store, KeyCategories, &st.categories); err != nil {
		return err
	}
	if err := load(ctx, l.store, KeyDamageReports, &st.damageReports); err != nil {
		return err
	}
	if err := load(ctx, l.store, KeyEquipmentRequests, &st.requests); err != nil {
		return err
	}
	if err := load(ctx, l.store, KeyNotifications, &st.notifications); err != nil {
		return err
	}

	l.mu.Lock()
	l.st = st
	l.mu.Unlock()

	l.logger.Info("ledger loaded",
		zap.Int("equipment", len(st.equipment)),
		zap.Int("history", len(st.history)),
		zap.Int("categories", len(st.categories)),
		zap.Int("damageReports", len(st.damageReports)),
		zap.Int("equipmentRequests", len(st.requests)),
		zap.Int("notifications", len(st.notifications)),
	)
	return nil
}

func load[T any](ctx context.Context, store SnapshotStore, key string, into *[]T) error {
	data, err := store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s snapshot: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decode %s snapshot: %w", key, err)
	}
	return nil
}

// run applies effects in order as one transition and then emits the toasts
// and events they raised. Nothing is emitted when any effect or the save fails.
func (l *Ledger) run(ctx context.Context, effects ...effect) error {
	t, err := l.commit(ctx, effects)
	if err != nil {
		return err
	}
	for _, toast := range t.toasts {
		l.toaster.Toast(ctx, toast)
	}
	for _, event := range t.events {
		l.publisher.Publish(ctx, event)
	}
	return nil
}

func (l *Ledger) commit(ctx context.Context, effects []effect) (*tx, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.begin()
	if err := t.apply(effects...); err != nil {
		return nil, err
	}
	if len(t.dirty) > 0 {
		snapshots, err := t.encode()
		if err != nil {
			return nil, err
		}
		if err := l.store.SaveAll(ctx, snapshots); err != nil {
			l.logger.Error("ledger snapshot save failed", zap.Error(err))
			return nil, fmt.Errorf("save ledger snapshot: %w", err)
		}
	}
	l.st = t.st
	return t, nil
}

func (l *Ledger) begin() *tx {
	return &tx{
		st:     l.st,
		dirty:  make(map[string]bool),
		now:    l.clock.Now().UTC(),
		newID:  l.newID,
		system: l.system,
	}
}

func (l *Ledger) toast(ctx context.Context, toast entities.Toast) {
	l.toaster.Toast(ctx, toast)
}

type nopToaster struct{}

func (nopToaster) Toast(context.Context, entities.Toast) {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, eventbus.Event) {}
