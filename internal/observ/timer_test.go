package observ

import (
	"strings"
	"testing"
)

func TestNilTimerIsNoop(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("parse")
	tm.End(idx, "x")
	tm.Measure("print", func() {})
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}

func TestReportKeepsPhaseOrder(t *testing.T) {
	tm := NewTimer()
	tm.Measure("load", func() {})
	idx := tm.Begin("parse")
	tm.End(idx, "3 statements")
	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "load" || r.Phases[1].Name != "parse" {
		t.Fatalf("phases: %+v", r.Phases)
	}
	if r.Phases[1].Note != "3 statements" {
		t.Fatalf("note: %q", r.Phases[1].Note)
	}
}

func TestMergeSumsByName(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "load", DurationMS: 1}, {Name: "parse", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "parse", DurationMS: 4}, {Name: "print", DurationMS: 1}}}
	a.Merge(b)
	if a.TotalMS != 8 {
		t.Fatalf("total: %v", a.TotalMS)
	}
	want := map[string]float64{"load": 1, "parse": 6, "print": 1}
	if len(a.Phases) != len(want) {
		t.Fatalf("phases: %+v", a.Phases)
	}
	for _, p := range a.Phases {
		if want[p.Name] != p.DurationMS {
			t.Fatalf("%s: got %v want %v", p.Name, p.DurationMS, want[p.Name])
		}
	}
	s := a.Summary()
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}
