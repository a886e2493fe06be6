package sheet

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// Source is a named input whose content is opened on demand.
type Source struct {
	Name string
	Open func(ctx context.Context) (io.ReadCloser, error)
}

// Pair holds the decoded log and report datasets.
type Pair struct {
	Logs    []model.LogRow
	Reports []model.ReportRow
}

// LoadPair opens and parses both sources concurrently. The first failure
// cancels the other load.
func LoadPair(ctx context.Context, logSrc, reportSrc Source, opts Options) (*Pair, error) {
	var (
		logRecs    []model.Record
		reportRecs []model.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := load(gctx, logSrc, opts)
		if err != nil {
			return eris.Wrap(err, "sheet: load log")
		}
		logRecs = recs
		return nil
	})
	g.Go(func() error {
		recs, err := load(gctx, reportSrc, opts)
		if err != nil {
			return eris.Wrap(err, "sheet: load report")
		}
		reportRecs = recs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := &Pair{
		Logs:    model.LogRowsFromRecords(logRecs),
		Reports: model.ReportRowsFromRecords(reportRecs),
	}
	zap.L().Info("sheet: loaded inputs",
		zap.String("log", logSrc.Name),
		zap.Int("log_rows", len(p.Logs)),
		zap.String("report", reportSrc.Name),
		zap.Int("report_rows", len(p.Reports)),
	)
	return p, nil
}

func load(ctx context.Context, src Source, opts Options) ([]model.Record, error) {
	if src.Open == nil {
		return nil, eris.Errorf("no opener for %q", src.Name)
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck

	return Parse(ctx, src.Name, rc, opts)
}
