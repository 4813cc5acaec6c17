package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemStatusValid(t *testing.T) {
	for _, s := range []ItemStatus{
		ItemStatusEnBodega,
		ItemStatusAsignado,
		ItemStatusEnComercio,
		ItemStatusReversaLista,
		ItemStatusEnReversa,
		ItemStatusReversado,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, ItemStatus("").Valid())
	assert.False(t, ItemStatus("Perdido").Valid())
	// Case and accents matter; the set is closed over exact strings.
	assert.False(t, ItemStatus("en bodega").Valid())
}

func TestItemStatusRequiresTerminal(t *testing.T) {
	assert.True(t, ItemStatusEnComercio.RequiresTerminal())
	assert.False(t, ItemStatusEnBodega.RequiresTerminal())
	assert.False(t, ItemStatusEnReversa.RequiresTerminal())
}

func TestAssignedTo(t *testing.T) {
	id := int64(7)
	item := &InventoryItem{AssignedToID: &id}

	assert.True(t, item.AssignedTo(7))
	assert.False(t, item.AssignedTo(8))
	assert.False(t, (&InventoryItem{}).AssignedTo(7))
}
