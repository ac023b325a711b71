package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	earliest "transit.dev/earliest"
	"transit.dev/earliest/graph"
)

func TestRenderStep(t *testing.T) {
	atStop := earliest.Step{
		Location: graph.AtStopLocation("U50S1"),
		Time:     10*3600 + 6*60,
	}
	assert.Equal(t, "10:06:00  at stop U50S1", renderStep(atStop))

	onTrip := earliest.Step{
		Location: graph.OnTripLocation("T1", "S_sat"),
		Time:     10 * 3600,
	}
	assert.Equal(t, "10:00:00  on trip T1", renderStep(onTrip))

	// Overnight times keep counting past 24 hours.
	late := earliest.Step{
		Location: graph.AtStopLocation("A"),
		Time:     25*3600 + 30*60,
	}
	assert.Equal(t, "25:30:00  at stop A", renderStep(late))
}
