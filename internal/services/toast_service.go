package services

import (
	"context"

	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/events"
	"equipment-tracker/pkg/eventbus"
	"equipment-tracker/pkg/utils"

	"go.uber.org/zap"
)

// BusToaster addresses ledger toasts to the acting user and publishes them on the bus.
type BusToaster struct {
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewBusToaster(bus *eventbus.Bus, logger *zap.Logger) *BusToaster {
	return &BusToaster{bus: bus, logger: logger}
}

func (t *BusToaster) Toast(ctx context.Context, toast entities.Toast) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		t.logger.Debug("toast without an acting user dropped", zap.String("title", toast.Title))
		return
	}
	toast.UserID = actor.ID
	t.bus.Publish(ctx, events.ToastRaisedEvent{Toast: toast})
}
