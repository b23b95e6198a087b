package scan

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/bryanroy/anomalyscan/internal/anomaly"
	"github.com/bryanroy/anomalyscan/internal/model"
	"github.com/bryanroy/anomalyscan/internal/store"
)

// Scanner orchestrates the staged search over candidate extensions of a base
// spectrum. It owns the shared results sequence, the anomaly-free
// subsequence, and the block A hit side list consumed by block B′.
//
// A Scanner is built per run and is not reusable across different base
// spectra; re-running the same scanner is idempotent because candidate
// enumeration is deterministic and persistence is content-addressed.
type Scanner struct {
	base   model.Spectrum
	cfg    Config
	sink   store.Sink
	logger *slog.Logger

	// mu guards the three slices below. Only the exhaustive block writes
	// from multiple goroutines; the other blocks are sequential.
	mu          sync.Mutex
	results     []model.ScanResult
	anomalyFree []model.ScanResult
	blockAHits  []model.Fermion

	tested atomic.Int64
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets a custom logger. If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) { s.logger = logger }
}

// NewScanner creates a Scanner over the given base spectrum, configuration,
// and result sink.
func NewScanner(base model.Spectrum, cfg Config, sink store.Sink, opts ...Option) *Scanner {
	s := &Scanner{
		base: base,
		cfg:  cfg,
		sink: sink,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// tolerance returns the cancellation tolerance for this run.
func (s *Scanner) tolerance() float64 {
	if s.cfg.Tolerance > 0 {
		return s.cfg.Tolerance
	}
	return anomaly.DefaultTolerance
}

// evaluate tests one candidate spectrum and returns its checker and verdict.
func (s *Scanner) evaluate(spectrum model.Spectrum) (*anomaly.Checker, bool) {
	s.tested.Add(1)
	checker := anomaly.NewChecker(spectrum)
	ok, _ := checker.VerifyCancellation(s.tolerance())
	return checker, ok
}

// record persists a passing spectrum and appends the typed result.
func (s *Scanner) record(checker *anomaly.Checker, stage model.Stage, tag, description string) (model.ScanResult, error) {
	id, err := s.sink.Persist(checker.Spectrum(), tag)
	if err != nil {
		return model.ScanResult{}, fmt.Errorf("failed to persist hit %q: %w", tag, err)
	}

	result := model.ScanResult{
		Spectrum:    checker.Spectrum(),
		Anomalies:   checker.Compute(),
		AnomalyFree: true,
		Description: description,
		Stage:       stage,
	}

	s.mu.Lock()
	s.results = append(s.results, result)
	s.anomalyFree = append(s.anomalyFree, result)
	s.mu.Unlock()

	s.logger.Debug("recorded anomaly-free model",
		"stage", stage.String(),
		"tag", tag,
		"id", id,
	)
	return result, nil
}

// ScanSingleAdditions runs block A: one candidate fermion per grid cell over
// the curated representation pairs, the k/6 hypercharge grid, and both
// chiralities. Passing candidates are additionally remembered for block B′.
func (s *Scanner) ScanSingleAdditions(ctx context.Context) ([]model.ScanResult, error) {
	var blockResults []model.ScanResult

	for _, pair := range BlockARepPairs {
		for _, k := range GridK(s.cfg.Hypercharge) {
			for _, chirality := range []int{model.LeftHanded, model.RightHanded} {
				if err := ctx.Err(); err != nil {
					return blockResults, err
				}

				y := big.NewRat(int64(k), GridDenominator)
				suffix := "L"
				if chirality == model.RightHanded {
					suffix = "R"
				}
				name := fmt.Sprintf("X_%d%d_%d_%s", pair.SU3, pair.SU2, k, suffix)

				candidate, err := model.NewFermion(name, pair.SU3, pair.SU2, y, chirality, 1)
				if err != nil {
					// Bad candidates abort only their own construction.
					s.logger.Warn("skipping invalid candidate", "name", name, "error", err)
					continue
				}

				checker, ok := s.evaluate(s.base.Append(candidate))
				if !ok {
					continue
				}

				s.mu.Lock()
				s.blockAHits = append(s.blockAHits, candidate)
				s.mu.Unlock()

				tag := fmt.Sprintf("single_%d%d_%d_%d", pair.SU3, pair.SU2, k, chirality)
				desc := fmt.Sprintf("Single fermion: (%d, %d)_%s × %d",
					pair.SU3, pair.SU2, model.FormatHypercharge(y), chirality)
				result, err := s.record(checker, model.StageSingleAddition, tag, desc)
				if err != nil {
					return blockResults, err
				}
				blockResults = append(blockResults, result)
			}
		}
	}

	s.logger.Info("block A complete", "hits", len(blockResults))
	return blockResults, nil
}

// ScanVectorLikePairs runs block B: the exhaustive cross product of generated
// hypercharges and representation dimensions, each tested as a left/right
// pair sharing the triple's quantum numbers. The pair is trivially
// self-cancelling, so this block doubles as a confirmation pass over the
// grid; it still runs every candidate through the engine.
//
// When Config.Workers is at least 2, candidates are evaluated in parallel.
// Hit identity is content-addressed, so insertion order is unspecified in
// that mode.
func (s *Scanner) ScanVectorLikePairs(ctx context.Context) ([]model.ScanResult, error) {
	type triple struct {
		y        *big.Rat
		su3, su2 int
	}

	var candidates []triple
	for _, y := range HyperchargeValues(s.cfg.Hypercharge, DefaultAbsYMax) {
		for _, su3 := range s.cfg.SU3Dimensions() {
			for _, su2 := range s.cfg.SU2Dimensions() {
				candidates = append(candidates, triple{y: y, su3: su3, su2: su2})
			}
		}
	}

	var (
		mu           sync.Mutex
		blockResults []model.ScanResult
	)

	run := func(t triple) error {
		left, err := model.NewFermion("X_L", t.su3, t.su2, t.y, model.LeftHanded, 1)
		if err != nil {
			s.logger.Warn("skipping invalid candidate pair", "su3", t.su3, "su2", t.su2, "error", err)
			return nil
		}
		right, err := model.NewFermion("X_R", t.su3, t.su2, t.y, model.RightHanded, 1)
		if err != nil {
			s.logger.Warn("skipping invalid candidate pair", "su3", t.su3, "su2", t.su2, "error", err)
			return nil
		}

		checker, ok := s.evaluate(s.base.Append(left, right))
		if !ok {
			return nil
		}

		tag := fmt.Sprintf("vector_like_%d%d_%s_%s", t.su3, t.su2, t.y.Num(), t.y.Denom())
		desc := fmt.Sprintf("Vector-like pair: (%d, %d)_%s", t.su3, t.su2, model.FormatHypercharge(t.y))
		result, err := s.record(checker, model.StageVectorLikePair, tag, desc)
		if err != nil {
			return err
		}

		mu.Lock()
		blockResults = append(blockResults, result)
		mu.Unlock()
		return nil
	}

	if s.cfg.Workers >= 2 {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Workers)
		for _, t := range candidates {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return run(t)
			})
		}
		if err := g.Wait(); err != nil {
			return blockResults, err
		}
	} else {
		for _, t := range candidates {
			if err := ctx.Err(); err != nil {
				return blockResults, err
			}
			if err := run(t); err != nil {
				return blockResults, err
			}
		}
	}

	s.logger.Info("block B complete", "candidates", len(candidates), "hits", len(blockResults))
	return blockResults, nil
}

// ScanVectorLikeFromA runs block B′: for each block A hit, the candidate and
// its chirality-flipped conjugate are tested together against the base. The
// side list is append-only during block A and read-only here, so no
// concurrent writers exist.
func (s *Scanner) ScanVectorLikeFromA(ctx context.Context) ([]model.ScanResult, error) {
	s.mu.Lock()
	seeds := make([]model.Fermion, len(s.blockAHits))
	copy(seeds, s.blockAHits)
	s.mu.Unlock()

	var blockResults []model.ScanResult
	for _, f := range seeds {
		if err := ctx.Err(); err != nil {
			return blockResults, err
		}

		conjugate := f.Conjugate(f.Name() + "bar")
		checker, ok := s.evaluate(s.base.Append(f, conjugate))
		if !ok {
			continue
		}

		y := f.Hypercharge()
		tag := fmt.Sprintf("vector_like_%d%d_%s_%s", f.SU3Rep(), f.SU2Rep(), y.Num(), y.Denom())
		desc := fmt.Sprintf("Vector-like pair from Block A: (%d, %d)_%s",
			f.SU3Rep(), f.SU2Rep(), model.FormatHypercharge(y))
		result, err := s.record(checker, model.StageVectorLikeFromA, tag, desc)
		if err != nil {
			return blockResults, err
		}
		blockResults = append(blockResults, result)
	}

	s.logger.Info("block B' complete", "seeds", len(seeds), "hits", len(blockResults))
	return blockResults, nil
}

// chiralPairHypercharges are the hypercharges block C sweeps: Y, with the
// pair carrying +Y and -Y.
var chiralPairHypercharges = []*big.Rat{
	big.NewRat(1, 2),
	big.NewRat(1, 1),
	big.NewRat(3, 2),
}

// ScanChiralPairs runs block C: Higgsino-style pairs, restricted to the
// SU(3) singlet SU(2) doublet with both members left-handed and opposite
// hypercharges.
func (s *Scanner) ScanChiralPairs(ctx context.Context) ([]model.ScanResult, error) {
	var blockResults []model.ScanResult

	for _, y := range chiralPairHypercharges {
		if err := ctx.Err(); err != nil {
			return blockResults, err
		}

		negY := new(big.Rat).Neg(y)
		hu := model.MustFermion("Hu", 1, 2, y, model.LeftHanded, 1)
		hd := model.MustFermion("Hd", 1, 2, negY, model.LeftHanded, 1)

		checker, ok := s.evaluate(s.base.Append(hu, hd))
		if !ok {
			continue
		}

		tag := fmt.Sprintf("higgsino_%s_%s", y.Num(), y.Denom())
		desc := fmt.Sprintf("Chiral pair: (1, 2)_[+%s, -%s]",
			model.FormatHypercharge(y), model.FormatHypercharge(y))
		result, err := s.record(checker, model.StageChiralPair, tag, desc)
		if err != nil {
			return blockResults, err
		}
		blockResults = append(blockResults, result)
	}

	s.logger.Info("block C complete", "hits", len(blockResults))
	return blockResults, nil
}

// TestPhysicsSets tests pre-built fermion sets directly against the base
// spectrum without going through the grid generator. Sets come from the rule
// layer's physics_motivated_sets sections.
func (s *Scanner) TestPhysicsSets(ctx context.Context, sets []model.Spectrum) ([]model.ScanResult, error) {
	var setResults []model.ScanResult

	for i, set := range sets {
		if err := ctx.Err(); err != nil {
			return setResults, err
		}

		checker, ok := s.evaluate(s.base.Append(set...))
		if !ok {
			continue
		}

		tag := fmt.Sprintf("physics_set_%d", i+1)
		desc := fmt.Sprintf("Physics-motivated set %d", i+1)
		result, err := s.record(checker, model.StagePhysicsSet, tag, desc)
		if err != nil {
			return setResults, err
		}
		setResults = append(setResults, result)
	}
	return setResults, nil
}

// limitReached reports whether the hit limit has been reached.
// The limit is checked only between blocks, never mid-block.
func (s *Scanner) limitReached() bool {
	if s.cfg.Limit <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.anomalyFree) >= s.cfg.Limit
}

// RunComprehensive sequences the enabled blocks in order A → B → B′ → C,
// returning early once the optional hit limit is reached.
func (s *Scanner) RunComprehensive(ctx context.Context) error {
	s.logger.Info("starting comprehensive parameter space scan",
		"base_fermions", len(s.base),
		"limit", s.cfg.Limit,
	)

	if s.cfg.BlockEnabled(BlockA) {
		if _, err := s.ScanSingleAdditions(ctx); err != nil {
			return err
		}
		if s.limitReached() {
			s.logger.Info("hit limit reached, stopping scan", "limit", s.cfg.Limit)
			return nil
		}
	}

	if s.cfg.BlockEnabled(BlockB) {
		if _, err := s.ScanVectorLikePairs(ctx); err != nil {
			return err
		}
		if s.limitReached() {
			s.logger.Info("hit limit reached, stopping scan", "limit", s.cfg.Limit)
			return nil
		}
	}

	if s.cfg.BlockEnabled(BlockBPrime) && len(s.BlockAHits()) > 0 {
		if _, err := s.ScanVectorLikeFromA(ctx); err != nil {
			return err
		}
		if s.limitReached() {
			s.logger.Info("hit limit reached, stopping scan", "limit", s.cfg.Limit)
			return nil
		}
	}

	if s.cfg.BlockEnabled(BlockC) {
		if _, err := s.ScanChiralPairs(ctx); err != nil {
			return err
		}
	}

	s.logger.Info("scan complete",
		"tested", s.TestedCount(),
		"anomaly_free", len(s.AnomalyFree()),
	)
	return nil
}

// Results returns all recorded results in discovery order.
func (s *Scanner) Results() []model.ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ScanResult, len(s.results))
	copy(out, s.results)
	return out
}

// AnomalyFree returns the anomaly-free subsequence of the results.
func (s *Scanner) AnomalyFree() []model.ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ScanResult, len(s.anomalyFree))
	copy(out, s.anomalyFree)
	return out
}

// BlockAHits returns the passing block A candidates.
func (s *Scanner) BlockAHits() []model.Fermion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Fermion, len(s.blockAHits))
	copy(out, s.blockAHits)
	return out
}

// TestedCount returns the total number of candidate spectra evaluated.
func (s *Scanner) TestedCount() int {
	return int(s.tested.Load())
}

// Base returns the base spectrum the scanner extends.
func (s *Scanner) Base() model.Spectrum { return s.base }

// Configuration returns the scan configuration.
func (s *Scanner) Configuration() Config { return s.cfg }
