package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShipmentFieldsIsComplete(t *testing.T) {
	complete := ShipmentFields{
		TruckNumber: "MH09HH4512",
		To:          "Nagpur",
		Weight:      "24000",
		Description: "Plastic Dana",
	}
	assert.True(t, complete.IsComplete())

	// from and name are optional
	withOptional := complete
	withOptional.From = "Indore"
	withOptional.Name = "Ramesh"
	assert.True(t, withOptional.IsComplete())

	for _, mutate := range []func(*ShipmentFields){
		func(f *ShipmentFields) { f.TruckNumber = "" },
		func(f *ShipmentFields) { f.To = "" },
		func(f *ShipmentFields) { f.Weight = "" },
		func(f *ShipmentFields) { f.Description = "" },
	} {
		f := complete
		mutate(&f)
		assert.False(t, f.IsComplete())
	}
}

func TestShipmentFieldsIsEmpty(t *testing.T) {
	assert.True(t, ShipmentFields{}.IsEmpty())
	assert.False(t, ShipmentFields{To: "Nagpur"}.IsEmpty())
}
