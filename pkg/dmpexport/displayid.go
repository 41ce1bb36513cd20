package dmpexport

import (
	"strconv"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
)

// DisplayIDs holds the short labels of one export: P1, P2, ... for new
// datasets and R1, R2, ... for reused ones, numbered in stored order.
type DisplayIDs struct {
	labels map[*dmp.Dataset]string
}

// AssignDisplayIDs numbers the datasets of plan.
func AssignDisplayIDs(plan *dmp.DMP) DisplayIDs {
	ids := DisplayIDs{labels: make(map[*dmp.Dataset]string, len(plan.Datasets))}
	var produced, reused int
	for i := range plan.Datasets {
		ds := &plan.Datasets[i]
		switch ds.Source {
		case dmp.SourceNew:
			produced++
			ids.labels[ds] = "P" + strconv.Itoa(produced)
		case dmp.SourceReused:
			reused++
			ids.labels[ds] = "R" + strconv.Itoa(reused)
		}
	}
	return ids
}

// Of returns the label of a dataset, or "" for a dataset of another plan.
func (d DisplayIDs) Of(ds *dmp.Dataset) string {
	return d.labels[ds]
}

// Describe returns "<label> (<title>)".
func (d DisplayIDs) Describe(ds *dmp.Dataset) string {
	return d.Of(ds) + " (" + ds.Title + ")"
}

// DescribeAll describes each dataset in order.
func (d DisplayIDs) DescribeAll(datasets []*dmp.Dataset) []string {
	out := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		out = append(out, d.Describe(ds))
	}
	return out
}
