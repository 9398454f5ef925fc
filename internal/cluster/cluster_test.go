package cluster

import (
	"testing"

	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestUrgency(t *testing.T) {
	assert.Equal(t, models.UrgencyLow, Urgency(0))
	assert.Equal(t, models.UrgencyLow, Urgency(1))
	assert.Equal(t, models.UrgencyModerate, Urgency(2))
	assert.Equal(t, models.UrgencyModerate, Urgency(4))
	assert.Equal(t, models.UrgencyHigh, Urgency(5))
	assert.Equal(t, models.UrgencyHigh, Urgency(6))
	assert.Equal(t, models.UrgencyCritical, Urgency(7))
	assert.Equal(t, models.UrgencyCritical, Urgency(100))
}

func TestUrgency_Monotonic(t *testing.T) {
	rank := map[models.UrgencyLevel]int{
		models.UrgencyLow: 0, models.UrgencyModerate: 1, models.UrgencyHigh: 2, models.UrgencyCritical: 3,
	}
	prev := rank[Urgency(0)]
	for n := 1; n <= 50; n++ {
		cur := rank[Urgency(n)]
		assert.GreaterOrEqual(t, cur, prev, "urgency decreased at %d", n)
		prev = cur
	}
}

func TestMapClusters_GroupsCaseInsensitive(t *testing.T) {
	reports := []*models.IncidentReport{
		{ID: 1, IncidentType: models.IncidentFire, LocationText: "Elm St", Status: models.ReportPending},
		{ID: 2, IncidentType: models.IncidentFire, LocationText: "elm st", Status: models.ReportInProgress, Latitude: ptr(10.3), Longitude: ptr(123.9)},
		{ID: 3, IncidentType: models.IncidentFlood, LocationText: "Elm St", Status: models.ReportPending},
	}

	clusters := MapClusters(reports)
	require.Len(t, clusters, 2)

	fire := clusters[0]
	assert.Equal(t, models.IncidentFire, fire.Type)
	assert.Equal(t, int64(1), fire.ID)
	assert.Equal(t, 2, fire.ReportCount)
	assert.Equal(t, []int64{1, 2}, fire.ReportIDs)
	assert.Equal(t, "Elm St", fire.Location)
	assert.Equal(t, models.UrgencyModerate, fire.Urgency)
	require.NotNil(t, fire.Latitude)
	assert.InDelta(t, 10.3, *fire.Latitude, 1e-9)

	flood := clusters[1]
	assert.Equal(t, models.IncidentFlood, flood.Type)
	assert.Equal(t, []int64{3}, flood.ReportIDs)
	assert.Equal(t, models.UrgencyLow, flood.Urgency)
	assert.Nil(t, flood.Latitude)
}

func TestMapClusters_SkipsCompleted(t *testing.T) {
	reports := []*models.IncidentReport{
		{ID: 1, IncidentType: models.IncidentFire, LocationText: "Elm St", Status: models.ReportCompleted},
		{ID: 2, IncidentType: models.IncidentFire, LocationText: "Elm St", Status: models.ReportPending},
	}

	clusters := MapClusters(reports)
	require.Len(t, clusters, 1)
	assert.Equal(t, []int64{2}, clusters[0].ReportIDs)
}

func TestMapClusters_CoordinateAndUniqueFallback(t *testing.T) {
	reports := []*models.IncidentReport{
		{ID: 1, IncidentType: models.IncidentFlood, Latitude: ptr(10.31231), Longitude: ptr(123.8914), Status: models.ReportPending},
		{ID: 2, IncidentType: models.IncidentFlood, Latitude: ptr(10.31229), Longitude: ptr(123.8912), Status: models.ReportPending, Barangay: "Tinago"},
		{ID: 3, IncidentType: models.IncidentFlood, Status: models.ReportPending},
		{ID: 4, IncidentType: models.IncidentFlood, Status: models.ReportPending},
	}

	clusters := MapClusters(reports)
	require.Len(t, clusters, 3)

	assert.Equal(t, []int64{1, 2}, clusters[0].ReportIDs)
	assert.Equal(t, "Tinago", clusters[0].Location)
	assert.Equal(t, []int64{3}, clusters[1].ReportIDs)
	assert.Equal(t, unknownLocation, clusters[1].Location)
	assert.Equal(t, []int64{4}, clusters[2].ReportIDs)
}

func TestMapClusters_CoordinatesAcrossEquatorShareKey(t *testing.T) {
	reports := []*models.IncidentReport{
		{ID: 1, IncidentType: models.IncidentFire, Latitude: ptr(-0.0002), Longitude: ptr(123.0), Status: models.ReportPending},
		{ID: 2, IncidentType: models.IncidentFire, Latitude: ptr(0.0002), Longitude: ptr(123.0), Status: models.ReportPending},
	}

	clusters := MapClusters(reports)
	require.Len(t, clusters, 1)
	assert.Equal(t, []int64{1, 2}, clusters[0].ReportIDs)
	assert.Equal(t, "Fire|geo|0.000,123.000", groupKey(reports[0]))
}

func TestMapClusters_Empty(t *testing.T) {
	clusters := MapClusters(nil)
	assert.NotNil(t, clusters)
	assert.Empty(t, clusters)
}
