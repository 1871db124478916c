package services

import (
	"context"
	"testing"
	"time"

	"equipment-tracker/internal/ledger"
	"equipment-tracker/internal/repositories"
	"equipment-tracker/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func newTestLedger(t *testing.T, opts ...ledger.Option) *ledger.Ledger {
	t.Helper()
	opts = append([]ledger.Option{ledger.WithClock(ledger.ClockFunc(func() time.Time { return fixedNow }))}, opts...)
	l := ledger.New(repositories.NewMemorySnapshotRepository(), opts...)
	require.NoError(t, l.Load(context.Background()))
	return l
}

func staffCtx() context.Context {
	return utils.WithActor(context.Background(), utils.Actor{ID: "1", Name: "Sarah Johnson", Role: "logistics_staff"})
}

func nurseCtx() context.Context {
	return utils.WithActor(context.Background(), utils.Actor{ID: "2", Name: "Michael Chen", Role: "nurse"})
}

var nop = zap.NewNop()
