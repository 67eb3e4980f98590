package numerator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpilot/internal/core/id"
)

func TestConfig_Key(t *testing.T) {
	day := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	cfg := DefaultConfig("SAL")
	assert.Equal(t, "SAL_20260831", cfg.Key(day))

	storeID := id.MustParse("019210aa-0000-7000-8000-000000000001")
	scoped := DefaultConfig("PUR").WithStore(storeID, "Main Warehouse")
	assert.Equal(t, "PUR_"+storeID.String()+"_20260831", scoped.Key(day))
}

func TestConfig_Key_StoresWithSharedNamePrefix(t *testing.T) {
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	north := DefaultConfig("PUR").WithStore(id.New(), "Main North")
	south := DefaultConfig("PUR").WithStore(id.New(), "Main South")

	assert.Equal(t, "MAI", north.StorePrefix)
	assert.Equal(t, "MAI", south.StorePrefix)
	assert.NotEqual(t, north.Key(day), south.Key(day))
}

func TestConfig_Key_DayRollover(t *testing.T) {
	cfg := DefaultConfig("TRF")

	before := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	after := time.Date(2026, 9, 1, 0, 0, 1, 0, time.UTC)

	assert.NotEqual(t, cfg.Key(before), cfg.Key(after))
}

func TestConfig_Format(t *testing.T) {
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	cfg := DefaultConfig("SAL")
	assert.Equal(t, "SAL-202608-0001", cfg.Format(day, 1))
	assert.Equal(t, "SAL-202608-0042", cfg.Format(day, 42))

	scoped := DefaultConfig("PUR").WithStore(id.New(), "Main Warehouse")
	assert.Equal(t, "PUR-MAI-202608-0007", scoped.Format(day, 7))
}

func TestConfig_Format_SequenceWiderThanPad(t *testing.T) {
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	cfg := DefaultConfig("SAL")
	assert.Equal(t, "SAL-202608-12345", cfg.Format(day, 12345))
}

func TestConfig_Format_ZeroPadWidthDefaults(t *testing.T) {
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	cfg := Config{Prefix: "RET"}
	assert.Equal(t, "RET-202608-0003", cfg.Format(day, 3))
}

func TestStoreMarker(t *testing.T) {
	assert.Equal(t, "MAI", StoreMarker("Main Warehouse"))
	assert.Equal(t, "DO", StoreMarker("do"))
	assert.Equal(t, "OUT", StoreMarker("  outlet  "))
	assert.Equal(t, "", StoreMarker("   "))
}

func TestStoreMarker_MultibyteName(t *testing.T) {
	assert.Equal(t, "МЮН", StoreMarker("Мюнхен"))
	assert.Equal(t, "仓库", StoreMarker("仓库"))
}

func TestMockGenerator_SharedMarkerCountsPerStore(t *testing.T) {
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	gen := &MockGenerator{}

	north := DefaultConfig("PUR").WithStore(id.New(), "Main North")
	south := DefaultConfig("PUR").WithStore(id.New(), "Main South")

	first, err := gen.NextNumber(context.Background(), north, day)
	require.NoError(t, err)
	assert.Equal(t, "PUR-MAI-202608-0001", first)

	// South starts its own sequence despite the identical marker.
	second, err := gen.NextNumber(context.Background(), south, day)
	require.NoError(t, err)
	assert.Equal(t, "PUR-MAI-202608-0001", second)
}
