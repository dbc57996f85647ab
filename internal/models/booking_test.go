package models

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The migrated schema must carry the partial unique index on utr: it is the
// only guard that holds when two different bookings confirm the same
// reference concurrently.
func TestBookingUtr_PartialUniqueIndex(t *testing.T) {
	field, ok := reflect.TypeOf(Booking{}).FieldByName("Utr")
	require.True(t, ok)

	tag := field.Tag.Get("gorm")
	assert.Contains(t, tag, "unique")
	assert.Contains(t, tag, "where:status = 'confirmed'")
}
