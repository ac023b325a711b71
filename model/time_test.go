package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("10:05:00")
	require.NoError(t, err)
	assert.Equal(t, 10*3600+5*60, v)

	// Overnight trips use hours >= 24.
	v, err = ParseTimeOfDay("25:30:15")
	require.NoError(t, err)
	assert.Equal(t, 25*3600+30*60+15, v)

	_, err = ParseTimeOfDay("10:05")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("10:60:00")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("ab:00:00")
	assert.Error(t, err)
}

func TestParseServiceDate(t *testing.T) {
	v, err := ParseServiceDate("20200201")
	require.NoError(t, err)
	assert.Equal(t, "20200201", v)

	_, err = ParseServiceDate("2020021")
	assert.Error(t, err)

	_, err = ParseServiceDate("20201301")
	assert.Error(t, err)

	_, err = ParseServiceDate("20200232")
	assert.Error(t, err)
}
