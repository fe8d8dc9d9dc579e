package structure

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/internal/options"
	"github.com/arloliu/anvil/nbt"
	"github.com/arloliu/anvil/region"
)

// invalidStartID marks a structure start that failed to generate.
const invalidStartID = "INVALID"

// Stats counts what a scan saw and produced.
type Stats struct {
	Files     int
	Chunks    int
	Starts    int
	Waypoints int
	Dumps     int
	Errors    int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Files += o.Files
	s.Chunks += o.Chunks
	s.Starts += o.Starts
	s.Waypoints += o.Waypoints
	s.Dumps += o.Dumps
	s.Errors += o.Errors
}

// Scanner finds structure starts in region files and turns them into waypoints.
//
// Chunks that fail to read are logged and skipped unless the scanner is strict.
type Scanner struct {
	cfg        *Config
	sink       Sink
	logger     *slog.Logger
	strict     bool
	regionOpts []region.Option
}

// ScannerOption configures a Scanner.
type ScannerOption = options.Option[*Scanner]

// WithLogger sets the logger for skipped chunks and unknown structures.
func WithLogger(logger *slog.Logger) ScannerOption {
	return options.New(func(s *Scanner) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		s.logger = logger

		return nil
	})
}

// WithStrict makes the first unreadable file or chunk abort the scan.
func WithStrict(strict bool) ScannerOption {
	return options.NoError(func(s *Scanner) {
		s.strict = strict
	})
}

// WithRegionOptions passes options to every region reader the scanner opens.
func WithRegionOptions(opts ...region.Option) ScannerOption {
	return options.NoError(func(s *Scanner) {
		s.regionOpts = append(s.regionOpts, opts...)
	})
}

// NewScanner creates a scanner writing into sink.
func NewScanner(cfg *Config, sink Sink, opts ...ScannerOption) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scanner{
		cfg:    cfg,
		sink:   sink,
		logger: slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// ScanDir scans every *.mca file below root.
func (s *Scanner) ScanDir(ctx context.Context, root string) (Stats, error) {
	var total Stats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match("*.mca", d.Name()); !ok {
			return nil
		}

		stats, err := s.ScanFile(ctx, path)
		total.Add(stats)

		return err
	})

	return total, err
}

// ScanFile scans all chunks of one region file.
func (s *Scanner) ScanFile(ctx context.Context, path string) (Stats, error) {
	stats := Stats{Files: 1}
	s.logger.Info("parsing region", "file", filepath.Base(path))

	r, err := region.Open(path, s.regionOpts...)
	if err != nil {
		stats.Errors++
		if s.strict {
			return stats, err
		}
		s.logger.Warn("skipping region", "file", path, "error", err)

		return stats, nil
	}
	defer r.Close()

	for chunk, err := range r.Chunks() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err != nil {
			stats.Errors++
			if s.strict {
				return stats, err
			}
			s.logger.Warn("skipping chunk", "error", err)

			continue
		}

		chunkStats, err := s.ScanChunk(chunk.Root)
		stats.Add(chunkStats)
		if err != nil {
			return stats, fmt.Errorf("%s: chunk (%d, %d): %w", path, chunk.X, chunk.Z, err)
		}
	}

	return stats, nil
}

// ScanChunk writes waypoints for the structure starts of one decoded chunk.
//
// Starts are looked up under Level.Structures.Starts, or structures.starts for worlds
// without the Level wrapper. A chunk without starts is not an error. The returned error
// comes from the sink only.
func (s *Scanner) ScanChunk(root nbt.Tag) (Stats, error) {
	stats := Stats{Chunks: 1}

	starts, err := findStarts(root.Compound())
	if err != nil {
		s.logger.Debug("no structure starts", "error", err)
		return stats, nil
	}

	for key, v := range starts.All() {
		start, ok := v.(*nbt.Compound)
		if !ok {
			s.logger.Warn("structure start is not a compound", "structure", key, "type", v.Type())
			continue
		}

		id, _ := start.GetString("id")
		if id == invalidStartID {
			continue
		}
		stats.Starts++

		rule, ok := s.cfg.Rule(key)
		if !ok {
			rule, ok = s.cfg.Rule(id)
		}
		if !ok {
			s.logger.Warn("don't know how to handle structure", "structure", key)
			if err := s.sink.Dump(key, nbt.Plain(start)); err != nil {
				return stats, err
			}
			stats.Dumps++

			continue
		}
		if rule.Kind == KindSkip {
			continue
		}

		bb, err := ParseBoundingBox(start)
		if err != nil {
			s.logger.Warn("no bounding box", "structure", key, "error", err)
			if err := s.sink.Dump(rule.Name+"-no-bb", nbt.Plain(start)); err != nil {
				return stats, err
			}
			stats.Dumps++

			continue
		}

		for _, w := range rule.Waypoints(s.cfg.Waypoint, bb, s.cfg.Dimensions) {
			written, err := s.sink.Waypoint(w)
			if err != nil {
				return stats, err
			}
			if written {
				stats.Waypoints++
			}
		}
	}

	return stats, nil
}

func findStarts(root *nbt.Compound) (*nbt.Compound, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: chunk root is not a compound", errs.ErrTypeMismatch)
	}

	v, err := root.Path("Level", "Structures", "Starts")
	if errors.Is(err, errs.ErrMissingField) && !root.Has("Level") {
		v, err = root.Path("structures", "starts")
	}
	if err != nil {
		return nil, err
	}

	starts, ok := v.(*nbt.Compound)
	if !ok {
		return nil, fmt.Errorf("%w: starts is %s", errs.ErrTypeMismatch, v.Type())
	}

	return starts, nil
}
