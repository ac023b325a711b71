package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit.dev/earliest/storage"
)

func newWriter(t *testing.T) storage.FeedWriter {
	w, err := storage.NewMemoryStorage().GetWriter("hash")
	require.NoError(t, err)
	return w
}

func TestParseAgencySingle(t *testing.T) {
	w := newWriter(t)
	ids, err := parseAgency(w, strings.NewReader(
		"agency_id,agency_name,agency_url,agency_timezone\n"+
			"AG,Metro,https://metro.example,Europe/Prague\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"AG": true}, ids)
}

func TestParseAgencyMismatchedTimezone(t *testing.T) {
	w := newWriter(t)
	_, err := parseAgency(w, strings.NewReader(
		"agency_id,agency_name,agency_url,agency_timezone\n"+
			"AG1,Metro,https://metro.example,Europe/Prague\n"+
			"AG2,Buses,https://buses.example,Europe/Berlin\n"))
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "agency_timezone", schemaErr.Field)
}

func TestParseAgencyDuplicateID(t *testing.T) {
	w := newWriter(t)
	_, err := parseAgency(w, strings.NewReader(
		"agency_id,agency_name,agency_url,agency_timezone\n"+
			"AG,Metro,https://metro.example,Europe/Prague\n"+
			"AG,Metro2,https://metro2.example,Europe/Prague\n"))
	require.Error(t, err)
}

func TestParseAgencyInvalidTimezone(t *testing.T) {
	w := newWriter(t)
	_, err := parseAgency(w, strings.NewReader(
		"agency_id,agency_name,agency_url,agency_timezone\n"+
			"AG,Metro,https://metro.example,Not/ATimezone\n"))
	require.Error(t, err)
}

func TestParseAgencyMissingName(t *testing.T) {
	w := newWriter(t)
	_, err := parseAgency(w, strings.NewReader(
		"agency_id,agency_name,agency_url,agency_timezone\n"+
			"AG,,https://metro.example,Europe/Prague\n"))
	require.Error(t, err)
}
