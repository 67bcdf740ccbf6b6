package stats

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sartorproj/goadf/logger"
)

// Interpreter interprets ADF statistics against a fixed Index and logs the
// fallbacks it takes. It is safe for concurrent use.
type Interpreter struct {
	index  *Index
	logger *zap.Logger
}

// NewInterpreter returns an Interpreter over idx. A nil idx uses
// DefaultIndex and a nil logger discards output.
func NewInterpreter(idx *Index, l *zap.Logger) *Interpreter {
	if idx == nil {
		idx = DefaultIndex()
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Interpreter{index: idx, logger: l}
}

// Index returns the index the interpreter reads from.
func (in *Interpreter) Index() *Index {
	return in.index
}

// Interpret is Decide over the interpreter's index.
func (in *Interpreter) Interpret(ctx context.Context, statistic float64, nobs int) (*ADFResult, error) {
	log := logger.Enrich(ctx, in.logger)

	res, d, err := decide(statistic, nobs, in.index)
	if err != nil {
		log.Warn("rejected ADF statistic", zap.Float64("statistic", statistic), zap.Int("nobs", nobs), zap.Error(err))
		return nil, err
	}

	if !res.Matched {
		log.Debug("no tabulated sample sizes, using default critical values", zap.Int("nobs", nobs))
	}
	if len(d.defaulted) > 0 {
		log.Debug("critical values defaulted",
			zap.Uint64("sample_size", res.SampleSize),
			zap.String("levels", strings.Join(d.defaulted, ",")))
	}
	if d.missingTable {
		log.Debug("no p-value table for sample size",
			zap.Uint64("sample_size", res.SampleSize),
			zap.Float64("p_value", res.PValue))
	}

	log.Debug("interpreted ADF statistic",
		zap.Float64("statistic", res.Statistic),
		zap.Float64("p_value", res.PValue),
		zap.Uint64("sample_size", res.SampleSize),
		zap.Bool("stationary", res.IsStationary))
	return res, nil
}
