// Package prof wires runtime/pprof and runtime/trace to CLI flags.
package prof

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spf13/afero"
)

// Options names the output files; an empty path disables that profile.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Enabled reports whether any profile was requested.
func (o Options) Enabled() bool {
	return o.CPU != "" || o.Mem != "" || o.Trace != ""
}

// Session holds the files of one profiling run.
type Session struct {
	fs      afero.Fs
	cpu     afero.File
	trace   afero.File
	memPath string
}

// Start begins CPU profiling and tracing as requested. The heap profile
// is captured by Stop.
func Start(fsys afero.Fs, opts Options) (*Session, error) {
	s := &Session{fs: fsys, memPath: opts.Mem}
	if opts.CPU != "" {
		f, err := fsys.Create(opts.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpu = f
	}
	if opts.Trace != "" {
		f, err := fsys.Create(opts.Trace)
		if err != nil {
			s.stopCPU()
			return nil, fmt.Errorf("trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, fmt.Errorf("trace: %w", err)
		}
		s.trace = f
	}
	return s, nil
}

func (s *Session) stopCPU() error {
	if s.cpu == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpu.Close()
	s.cpu = nil
	return err
}

// Stop finishes every active profile and writes the heap profile.
// Safe to call on a nil session and more than once.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	errs = append(errs, s.stopCPU())
	if s.trace != nil {
		trace.Stop()
		errs = append(errs, s.trace.Close())
		s.trace = nil
	}
	if s.memPath != "" {
		errs = append(errs, s.writeMem(s.memPath))
		s.memPath = ""
	}
	return errors.Join(errs...)
}

func (s *Session) writeMem(path string) (err error) {
	f, err := s.fs.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
