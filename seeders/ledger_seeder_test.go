package seeders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-tracker/internal/ledger"
	"equipment-tracker/internal/repositories"
	"equipment-tracker/pkg/constants"
)

func TestSeedLedgerFillsEmptyLedger(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(repositories.NewMemorySnapshotRepository())
	actor := ledger.Actor{ID: "system", Name: "System"}

	require.NoError(t, SeedLedger(ctx, l, actor, zap.NewNop()))

	assert.Len(t, l.ListCategories(), len(categorySeeds))
	items := l.ListEquipment(ledger.EquipmentFilter{})
	require.Len(t, items, len(equipmentSeeds))

	inUse := l.ListEquipment(ledger.EquipmentFilter{Status: constants.EquipmentInUse})
	require.Len(t, inUse, 1)
	require.NotNil(t, inUse[0].AssignedTo)
	assert.Equal(t, "2", *inUse[0].AssignedTo)
	assert.Len(t, l.GetEquipmentHistoryByID(inUse[0].ID), 1)
}

func TestSeedLedgerSkipsPopulatedLedger(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(repositories.NewMemorySnapshotRepository())
	_, err := l.AddCategory(ctx, ledger.NewCategory{Name: "Existing"})
	require.NoError(t, err)

	require.NoError(t, SeedLedger(ctx, l, ledger.Actor{ID: "system"}, zap.NewNop()))

	assert.Len(t, l.ListCategories(), 1)
	assert.Empty(t, l.ListEquipment(ledger.EquipmentFilter{}))
}

func TestDefaultUsersCoverEveryRole(t *testing.T) {
	roles := map[constants.UserRole]bool{}
	for _, u := range DefaultUsers() {
		roles[u.Role] = true
	}
	assert.True(t, roles[constants.RoleLogisticsStaff])
	assert.True(t, roles[constants.RoleNurse])
	assert.True(t, roles[constants.RoleManager])
}
