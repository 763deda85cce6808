package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/layout/route"
	"github.com/matzehuels/boxroute/pkg/spec"
)

func sampleRouteResult() route.Result {
	return route.Result{
		Connections: []layout.ConnectionDisplay{{
			Start: "api",
			End:   "db",
			Kind:  spec.Singular,
			Path:  []layout.Position{layout.Pos(3, 2), layout.Pos(3, 3), layout.Pos(3, 4)},
		}},
		Unrouted: []spec.ConnectionSpec{{Start: "db", End: "cache"}},
		Skipped:  []spec.ConnectionSpec{{Start: "cache", End: "ghost"}},
	}
}

func TestCheckRows(t *testing.T) {
	rows := checkRows(sampleRouteResult())

	var got []string
	for _, r := range rows {
		got = append(got, r.conn.Start+"-"+r.conn.End+":"+r.status)
	}
	want := []string{"api-db:routed", "db-cache:unrouted", "cache-ghost:skipped"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if rows[0].cells != 3 {
		t.Errorf("routed cells = %d, want 3", rows[0].cells)
	}
}

func TestCheckTable(t *testing.T) {
	out := checkTable(sampleRouteResult())

	for _, want := range []string{"Start", "Status", "api", "singular", "routed", "unrouted", "skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
