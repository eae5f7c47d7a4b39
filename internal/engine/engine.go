package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/horizon/internal/constants"
	"github.com/roach88/horizon/internal/ir"
	"github.com/roach88/horizon/internal/store"
)

// Engine evaluates registered operations against one constant set and
// appends every evaluation to the run's log.
//
// Invoke is safe from any goroutine; evaluations are serialized so seq
// numbers and store writes follow call order.
type Engine struct {
	mu sync.Mutex

	kit    *kit
	set    constants.Set
	run    ir.Run
	store  *store.Store
	clock  SeqSource
	logger *slog.Logger

	clockSet  bool
	runStored bool
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	store  *store.Store
	clock  SeqSource
	runID  string
	gen    RunIDGenerator
	logger *slog.Logger
}

// WithStore records evaluations in s. Without a store nothing is persisted.
func WithStore(s *store.Store) Option {
	return func(c *engineConfig) { c.store = s }
}

// WithClock replaces the logical clock. When unset and the run already has
// records, the clock resumes after the run's last seq.
func WithClock(clock SeqSource) Option {
	return func(c *engineConfig) { c.clock = clock }
}

// WithRunID appends to the run with the given ID instead of generating one.
func WithRunID(id string) Option {
	return func(c *engineConfig) { c.runID = id }
}

// WithRunIDGenerator sets the generator used when no run ID is given.
// Default: UUIDv7Generator.
func WithRunIDGenerator(gen RunIDGenerator) Option {
	return func(c *engineConfig) { c.gen = gen }
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) { c.logger = l }
}

// Record is one evaluation and its outcome.
type Record struct {
	Evaluation ir.Evaluation `json:"evaluation"`
	Outcome    ir.Outcome    `json:"outcome"`
}

// New creates an engine for a validated constant set.
func New(set constants.Set, opts ...Option) (*Engine, error) {
	cfg := engineConfig{gen: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	pc := set.Constants
	if err := pc.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	fields := pc.Fields()
	hash, err := ir.ConstantsHash(fields)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	constantsObj := make(ir.IRObject, len(fields))
	for k, v := range fields {
		constantsObj[k] = ir.IRFloat(v)
	}

	runID := cfg.runID
	if runID == "" {
		runID = cfg.gen.Generate()
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		kit: newKit(pc),
		set: set,
		run: ir.Run{
			ID:            runID,
			ConstantsName: set.Name,
			ConstantsHash: hash,
			Constants:     constantsObj,
			EngineVersion: ir.EngineVersion,
			IRVersion:     ir.IRVersion,
		},
		store:    cfg.store,
		clock:    cfg.clock,
		clockSet: cfg.clock != nil,
		logger:   logger.With("run", runID),
	}
	if e.clock == nil {
		e.clock = NewClock()
	}
	return e, nil
}

// Run returns the run this engine appends to.
func (e *Engine) Run() ir.Run {
	return e.run
}

// Constants returns the constant set the engine evaluates with.
func (e *Engine) Constants() constants.Set {
	return e.set
}

// Invoke evaluates one operation.
//
// Argument and domain failures are not errors: they produce an outcome with
// a non-success case and a {code, message} result, and are recorded like any
// other evaluation. An unknown operation, a result that cannot be encoded, or
// a failed store write is returned as an error and nothing is recorded.
func (e *Engine) Invoke(ctx context.Context, operation string, args ir.IRObject) (Record, error) {
	op, ok := Lookup(operation)
	if !ok {
		return Record{}, unknownOperation(operation)
	}
	if args == nil {
		args = ir.IRObject{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureRun(ctx); err != nil {
		return Record{}, err
	}

	outcomeCase, result, err := evaluate(e.kit, op, args)
	if err != nil {
		return Record{}, fmt.Errorf("invoke %s: %w", operation, err)
	}

	evSeq := e.clock.Next()
	evID, err := ir.EvaluationID(e.run.ID, operation, args, evSeq)
	if err != nil {
		return Record{}, fmt.Errorf("invoke %s: %w", operation, err)
	}

	outSeq := e.clock.Next()
	outID, err := ir.OutcomeID(evID, outcomeCase, result, outSeq)
	if err != nil {
		return Record{}, fmt.Errorf("invoke %s: %w", operation, err)
	}
	digest, err := ir.ResultDigest(outcomeCase, result)
	if err != nil {
		return Record{}, fmt.Errorf("invoke %s: %w", operation, err)
	}

	rec := Record{
		Evaluation: ir.Evaluation{
			ID:        evID,
			RunID:     e.run.ID,
			Operation: operation,
			Args:      args,
			Seq:       evSeq,
		},
		Outcome: ir.Outcome{
			ID:           outID,
			EvaluationID: evID,
			Case:         outcomeCase,
			Result:       result,
			Digest:       digest,
			Seq:          outSeq,
		},
	}

	if e.store != nil {
		if err := e.store.WriteEvaluationOutcome(ctx, rec.Evaluation, rec.Outcome); err != nil {
			return Record{}, fmt.Errorf("invoke %s: %w", operation, err)
		}
	}

	e.logger.Debug("evaluated",
		"operation", operation,
		"seq", evSeq,
		"case", outcomeCase,
	)
	return rec, nil
}

// ensureRun writes the run record once and resumes the clock of an
// existing run. Must be called with e.mu held.
func (e *Engine) ensureRun(ctx context.Context) error {
	if e.store == nil || e.runStored {
		return nil
	}
	if err := e.store.WriteRun(ctx, e.run); err != nil {
		return err
	}
	stored, err := e.store.ReadRun(ctx, e.run.ID)
	if err != nil {
		return err
	}
	if stored.ConstantsHash != e.run.ConstantsHash {
		return fmt.Errorf("run %s was recorded with constant set %q", e.run.ID, stored.ConstantsName)
	}
	if !e.clockSet {
		last, err := e.store.GetLastSeq(ctx, e.run.ID)
		if err != nil {
			return err
		}
		e.clock = NewClockAt(last)
		e.clockSet = true
	}
	e.runStored = true
	e.logger.Debug("run opened", "constants", e.run.ConstantsName, "seq", e.clock.Current())
	return nil
}

// evaluate binds arguments and runs the operation. The returned error is
// reserved for results that cannot be encoded.
func evaluate(k *kit, op Operation, raw ir.IRObject) (string, ir.IRObject, error) {
	args, err := bind(op.Name, op.Params, raw)
	if err != nil {
		return failure(classify(op.Name, err))
	}

	value, err := op.eval(k, args)
	if err != nil {
		return failure(classify(op.Name, err))
	}

	result, err := ir.FromStruct(value)
	if err != nil {
		return "", nil, err
	}
	return ir.CaseSuccess, result, nil
}

func failure(ee *EvalError) (string, ir.IRObject, error) {
	return ee.Case(), ir.IRObject{
		"code":    ir.IRString(ee.Code),
		"message": ir.IRString(ee.Message),
	}, nil
}
