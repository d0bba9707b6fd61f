package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternalRefRoundTrip(t *testing.T) {
	ref := ExternalRef(7, 1234)
	assert.Equal(t, "appointment:7:1234", ref)

	tenantID, appointmentID, ok := ParseExternalRef(ref)
	assert.True(t, ok)
	assert.Equal(t, uint(7), tenantID)
	assert.Equal(t, uint(1234), appointmentID)
}

func TestParseExternalRefRejectsForeignRefs(t *testing.T) {
	tests := []string{
		"",
		"appointment",
		"appointment:7",
		"appointment:7:8:9",
		"order:7:8",
		"appointment:x:8",
		"appointment:7:y",
		"appointment:-1:8",
	}

	for _, ref := range tests {
		_, _, ok := ParseExternalRef(ref)
		assert.False(t, ok, ref)
	}
}
