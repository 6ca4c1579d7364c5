package catalog

import (
	"fmt"
	"slices"

	"moodplayer/internal/mood"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// DefaultGroups is the number of mood groups used for catalog inspection
const DefaultGroups = 3

// Group is a set of catalog tracks with similar native moods
type Group struct {
	Dominant mood.Axis
	Center   mood.Vector
	Indices  []int // catalog indices, ascending
}

// trackObservation wraps a catalog index to implement clusters.Observation
type trackObservation struct {
	index  int
	coords clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// GroupByMood partitions the catalog into k mood groups with k-means.
// Groups are ordered by their dominant axis, then by first index. Centroid
// initialization uses the kmeans package's own random source.
func GroupByMood(tracks []Track, k int) ([]Group, error) {
	if k <= 0 {
		k = DefaultGroups
	}
	if len(tracks) < k {
		return nil, fmt.Errorf("need at least %d tracks to form %d groups, have %d", k, k, len(tracks))
	}

	var obs clusters.Observations
	for i, t := range tracks {
		coords := make(clusters.Coordinates, mood.NumAxes)
		for a := range t.Mood {
			coords[a] = t.Mood[a]
		}
		obs = append(obs, trackObservation{index: i, coords: coords})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("k-means partition failed: %w", err)
	}

	var groups []Group
	for _, c := range result {
		if len(c.Observations) == 0 {
			continue
		}

		var g Group
		for i := 0; i < mood.NumAxes && i < len(c.Center); i++ {
			g.Center[i] = c.Center[i]
		}
		g.Dominant = g.Center.Dominant()

		for _, o := range c.Observations {
			if to, ok := o.(trackObservation); ok {
				g.Indices = append(g.Indices, to.index)
			}
		}
		slices.Sort(g.Indices)
		groups = append(groups, g)
	}

	slices.SortFunc(groups, func(a, b Group) int {
		if a.Dominant != b.Dominant {
			return int(a.Dominant) - int(b.Dominant)
		}
		return a.Indices[0] - b.Indices[0]
	})

	return groups, nil
}
