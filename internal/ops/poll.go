package ops

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/logscout/logscout/internal/platform"
)

// DefaultMaxWait is the wait budget applied when a tool call does not
// specify one.
const DefaultMaxWait = 30 * time.Second

type clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

type pollConfig struct {
	interval time.Duration
	clock    clock
}

var defaultPollConfig = pollConfig{interval: time.Second, clock: realClock{}}

// Await polls GetQueryResults for queryID until the remote status is
// terminal or the wall-clock budget runs out. A spent budget is not an
// error: the returned outcome carries the synthesized Timeout status and
// no rows, and the remote query keeps running (and accruing cost) until
// it finishes or is cancelled explicitly.
//
// Transient remote failures (throttling, network) are absorbed by the
// same fixed-interval retry; any other remote failure aborts immediately.
func Await(ctx context.Context, client platform.LogsAPI, queryID string, maxWait time.Duration) (*platform.QueryOutcome, error) {
	return await(ctx, client, queryID, maxWait, defaultPollConfig)
}

func await(ctx context.Context, client platform.LogsAPI, queryID string, maxWait time.Duration, cfg pollConfig) (*platform.QueryOutcome, error) {
	start := cfg.clock.Now()

	for {
		outcome, err := client.GetQueryResults(ctx, queryID)
		switch {
		case err != nil && !platform.IsTransient(err):
			return nil, platform.WrapQueryError(platform.ErrQueryExecution,
				fmt.Sprintf("polling query %s failed: %v", queryID, err),
				"Check the query ID and AWS credentials", err)
		case err != nil:
			slog.Debug("transient poll failure", "queryId", queryID, "err", err)
		case platform.IsTerminalStatus(outcome.Status):
			return outcome, nil
		}

		if cfg.clock.Now().Sub(start) >= maxWait {
			slog.Warn("query poll budget exhausted", "queryId", queryID, "maxWait", maxWait)
			return timeoutOutcome(queryID, maxWait), nil
		}

		if err := cfg.clock.Sleep(ctx, cfg.interval); err != nil {
			return nil, err
		}
	}
}

// timeoutOutcome is the locally synthesized result for a spent wait
// budget. It deliberately carries no rows: partial results for a
// non-terminal query would be misleading.
func timeoutOutcome(queryID string, maxWait time.Duration) *platform.QueryOutcome {
	return &platform.QueryOutcome{
		QueryID: queryID,
		Status:  platform.StatusTimeout,
		Messages: []string{fmt.Sprintf(
			"Query %s did not complete within %s. The query is still running remotely; retrieve results later with get_logs_insight_query_results or stop it with cancel_logs_insight_query.",
			queryID, maxWait)},
	}
}
