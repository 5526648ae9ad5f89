package setpoints

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/configuration"
)

func createStore() *Store {
	return NewStore(
		configuration.SetpointLimitConfig{Min: 150, Max: 300, Default: 225},
		configuration.SetpointLimitConfig{Min: 120, Max: 210, Default: 190},
	)
}

func TestNewStoreDefaults(t *testing.T) {
	// GIVEN
	store := createStore()

	// THEN
	assert.Equal(t, 225, store.Air())
	assert.Equal(t, 190, store.Meat())
	assert.Equal(t, TargetAir, store.Selected())
}

func TestAdjustMovesValue(t *testing.T) {
	// GIVEN
	store := createStore()

	// WHEN
	applied := store.Adjust(TargetAir, 5)

	// THEN
	assert.Equal(t, 230, applied)
	assert.Equal(t, 230, store.Air())
}

func TestAdjustClampsAtMax(t *testing.T) {
	// GIVEN
	store := createStore()
	store.Set(TargetAir, 298)

	// WHEN
	applied := store.Adjust(TargetAir, 5)

	// THEN the value sticks to the limit instead of being rejected
	assert.Equal(t, 300, applied)

	// WHEN adjusted again
	applied = store.Adjust(TargetAir, 5)

	// THEN it stays at the limit
	assert.Equal(t, 300, applied)
}

func TestAdjustClampsAtMin(t *testing.T) {
	// GIVEN
	store := createStore()
	store.Set(TargetMeat, 121)

	// WHEN
	applied := store.Adjust(TargetMeat, -5)

	// THEN
	assert.Equal(t, 120, applied)
}

func TestSetClampsOutOfRangeRequests(t *testing.T) {
	// GIVEN
	store := createStore()

	// WHEN
	appliedHigh := store.Set(TargetAir, 5000)
	appliedLow := store.Set(TargetMeat, 0)

	// THEN
	assert.Equal(t, 300, appliedHigh)
	assert.Equal(t, 120, appliedLow)
}

func TestToggleSelection(t *testing.T) {
	// GIVEN
	store := createStore()

	// WHEN
	first := store.ToggleSelection()
	// THEN
	assert.Equal(t, TargetMeat, first)

	// WHEN
	second := store.ToggleSelection()
	// THEN
	assert.Equal(t, TargetAir, second)
}

func TestAdjustSelectedFollowsSelection(t *testing.T) {
	// GIVEN
	store := createStore()

	// WHEN air is selected
	target, applied := store.AdjustSelected(1)

	// THEN
	assert.Equal(t, TargetAir, target)
	assert.Equal(t, 226, applied)

	// WHEN the selection is toggled to meat
	store.ToggleSelection()
	target, applied = store.AdjustSelected(-1)

	// THEN
	assert.Equal(t, TargetMeat, target)
	assert.Equal(t, 189, applied)
	assert.Equal(t, 226, store.Air())
}

func TestNewStoreClampsBadDefault(t *testing.T) {
	// GIVEN a default outside its own limits
	store := NewStore(
		configuration.SetpointLimitConfig{Min: 150, Max: 300, Default: 500},
		configuration.SetpointLimitConfig{Min: 120, Max: 210, Default: 50},
	)

	// THEN
	assert.Equal(t, 300, store.Air())
	assert.Equal(t, 120, store.Meat())
}

func TestClampIsIdempotent(t *testing.T) {
	// GIVEN
	store := createStore()
	store.Adjust(TargetAir, 100)

	// WHEN
	store.Clamp()
	first := store.Air()
	store.Clamp()
	second := store.Air()

	// THEN
	assert.Equal(t, 300, first)
	assert.Equal(t, first, second)
}

func TestGetReturnsLimits(t *testing.T) {
	// GIVEN
	store := createStore()

	// WHEN
	air := store.Get(TargetAir)
	meat := store.Get(TargetMeat)

	// THEN
	assert.Equal(t, Setpoint{Value: 225, Min: 150, Max: 300}, air)
	assert.Equal(t, Setpoint{Value: 190, Min: 120, Max: 210}, meat)
}
