// Package cluster groups open incident reports by place and derives urgency
// from cluster size.
package cluster

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/textnorm"
)

// coordinatePrecision is the number of decimals kept for coordinate keys (~110 m)
const coordinatePrecision = 3

const unknownLocation = "Unknown location"

// Urgency maps a cluster size to its severity level
func Urgency(count int) models.UrgencyLevel {
	switch {
	case count <= 1:
		return models.UrgencyLow
	case count <= 4:
		return models.UrgencyModerate
	case count <= 6:
		return models.UrgencyHigh
	default:
		return models.UrgencyCritical
	}
}

// SimilarityKey returns the text a report is compared on when counting
// reports at the same place: the location text if present, else the barangay.
// The key is lowercased and trimmed; empty means the report has no place.
func SimilarityKey(r *models.IncidentReport) string {
	if loc := strings.TrimSpace(r.LocationText); loc != "" {
		return strings.ToLower(loc)
	}
	return strings.ToLower(strings.TrimSpace(r.Barangay))
}

func groupKey(r *models.IncidentReport) string {
	if key := textnorm.Normalize(r.LocationText); key != "" {
		return fmt.Sprintf("%s|loc|%s", r.IncidentType, key)
	}
	if r.HasCoordinates() {
		scale := math.Pow(10, coordinatePrecision)
		// + 0 turns -0 into 0 so both sides of the equator share a key
		lat := math.Round(*r.Latitude*scale)/scale + 0
		lng := math.Round(*r.Longitude*scale)/scale + 0
		return fmt.Sprintf("%s|geo|%.*f,%.*f", r.IncidentType, coordinatePrecision, lat, coordinatePrecision, lng)
	}
	return fmt.Sprintf("%s|report|%d", r.IncidentType, r.ID)
}

// MapClusters groups non-completed reports by incident type and normalized
// location. Reports without a location fall back to rounded coordinates, and
// reports with neither stay on their own. Clusters are returned largest first.
func MapClusters(reports []*models.IncidentReport) []models.Cluster {
	index := make(map[string]int)
	clusters := make([]models.Cluster, 0)

	for _, r := range reports {
		if r.Status == models.ReportCompleted {
			continue
		}
		key := groupKey(r)
		i, ok := index[key]
		if !ok {
			clusters = append(clusters, models.Cluster{
				ID:       r.ID,
				Type:     r.IncidentType,
				Location: displayLocation(r),
			})
			i = len(clusters) - 1
			index[key] = i
		}
		c := &clusters[i]
		c.ReportCount++
		c.ReportIDs = append(c.ReportIDs, r.ID)
		if c.Latitude == nil && c.Longitude == nil && r.HasCoordinates() {
			lat, lng := *r.Latitude, *r.Longitude
			c.Latitude, c.Longitude = &lat, &lng
		}
		if c.Location == unknownLocation {
			c.Location = displayLocation(r)
		}
	}

	for i := range clusters {
		clusters[i].Urgency = Urgency(clusters[i].ReportCount)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].ReportCount != clusters[j].ReportCount {
			return clusters[i].ReportCount > clusters[j].ReportCount
		}
		return clusters[i].ID < clusters[j].ID
	})
	return clusters
}

func displayLocation(r *models.IncidentReport) string {
	if loc := strings.TrimSpace(r.LocationText); loc != "" {
		return loc
	}
	if b := strings.TrimSpace(r.Barangay); b != "" {
		return b
	}
	return unknownLocation
}
