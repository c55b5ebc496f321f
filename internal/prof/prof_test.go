package prof

import (
	"testing"

	"github.com/spf13/afero"
)

func TestSessionWritesProfiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := Start(fsys, Options{CPU: "/cpu.out", Mem: "/mem.out"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"/cpu.out", "/mem.out"} {
		info, err := fsys.Stat(p)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", p)
		}
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if (Options{}).Enabled() {
		t.Fatal("empty options enabled")
	}
}
