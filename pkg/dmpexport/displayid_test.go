package dmpexport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
)

func TestAssignDisplayIDs(t *testing.T) {
	plan := &dmp.DMP{Datasets: []dmp.Dataset{
		{Title: "a", Source: dmp.SourceReused},
		{Title: "b", Source: dmp.SourceNew},
		{Title: "c", Source: dmp.SourceNew},
		{Title: "d", Source: dmp.SourceReused},
		{Title: "e", Source: dmp.SourceNew},
	}}

	ids := AssignDisplayIDs(plan)

	var got []string
	for i := range plan.Datasets {
		got = append(got, ids.Of(&plan.Datasets[i]))
	}
	assert.Equal(t, []string{"R1", "P1", "P2", "R2", "P3"}, got)
	assert.Equal(t, "P1 (b)", ids.Describe(&plan.Datasets[1]))
	assert.Equal(t, []string{"R1 (a)", "P3 (e)"}, ids.DescribeAll([]*dmp.Dataset{&plan.Datasets[0], &plan.Datasets[4]}))
}

func TestDisplayIDsAreFreshPerExport(t *testing.T) {
	plan := &dmp.DMP{Datasets: []dmp.Dataset{{Source: dmp.SourceNew}}}

	first := AssignDisplayIDs(plan)
	second := AssignDisplayIDs(plan)
	assert.Equal(t, first.Of(&plan.Datasets[0]), second.Of(&plan.Datasets[0]))
	assert.Equal(t, "P1", second.Of(&plan.Datasets[0]))

	other := &dmp.Dataset{Source: dmp.SourceNew}
	assert.Equal(t, "", first.Of(other))
}
