package platform

import (
	"context"
	"strings"
	"sync"
)

// Compile-time interface check.
var _ LogsAPI = (*Mock)(nil)

// Mock is a configurable mock for the LogsAPI interface.
type Mock struct {
	mu sync.Mutex

	logGroups    []LogGroup
	savedQueries []SavedQuery
	queryID      string
	// results holds the scripted GetQueryResults responses per query ID.
	// Each poll consumes one entry until a single entry remains, which
	// then repeats — so a final terminal outcome can be scripted after
	// any number of in-flight ones.
	results map[string][]*QueryOutcome
	// pollErrs are errors injected before the scripted results, consumed
	// one per poll. Lets tests script "transient failure, then Complete".
	pollErrs    map[string][]error
	stopSuccess map[string]bool
	detectors   []AnomalyDetector
	anomalies   map[string][]Anomaly

	// Error overrides: method name -> error
	errors map[string]error

	// Call counters per method name.
	calls map[string]int
}

// NewMock creates a new configurable mock.
func NewMock() *Mock {
	return &Mock{
		results:     make(map[string][]*QueryOutcome),
		pollErrs:    make(map[string][]error),
		stopSuccess: make(map[string]bool),
		anomalies:   make(map[string][]Anomaly),
		errors:      make(map[string]error),
		calls:       make(map[string]int),
	}
}

// WithLogGroups sets the log groups returned by DescribeLogGroups.
func (m *Mock) WithLogGroups(groups ...LogGroup) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logGroups = groups
	return m
}

// WithSavedQueries sets the queries returned by DescribeQueryDefinitions.
func (m *Mock) WithSavedQueries(queries ...SavedQuery) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedQueries = queries
	return m
}

// WithQueryID sets the ID returned by StartQuery.
func (m *Mock) WithQueryID(id string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryID = id
	return m
}

// WithQueryResults scripts the successive GetQueryResults responses for a
// query ID. The last entry repeats once the script is exhausted.
func (m *Mock) WithQueryResults(queryID string, outcomes ...*QueryOutcome) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[queryID] = outcomes
	return m
}

// WithPollErrors injects errors returned by GetQueryResults before the
// scripted outcomes, one per call.
func (m *Mock) WithPollErrors(queryID string, errs ...error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollErrs[queryID] = errs
	return m
}

// WithStopSuccess sets the StopQuery success flag for a query ID.
func (m *Mock) WithStopSuccess(queryID string, success bool) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopSuccess[queryID] = success
	return m
}

// WithAnomalyDetectors sets the detectors returned by ListAnomalyDetectors.
func (m *Mock) WithAnomalyDetectors(detectors ...AnomalyDetector) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detectors = detectors
	return m
}

// WithAnomalies sets the anomalies returned for a detector ARN.
func (m *Mock) WithAnomalies(detectorARN string, anomalies ...Anomaly) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anomalies[detectorARN] = anomalies
	return m
}

// WithError makes the named method return err.
func (m *Mock) WithError(method string, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method] = err
	return m
}

// Calls returns how many times the named method was invoked.
func (m *Mock) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *Mock) enter(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
	return m.errors[method]
}

func (m *Mock) DescribeLogGroups(ctx context.Context, params ListLogGroupsParams) ([]LogGroup, error) {
	if err := m.enter("DescribeLogGroups"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []LogGroup
	for _, lg := range m.logGroups {
		if params.NamePrefix != "" && !strings.HasPrefix(lg.LogGroupName, params.NamePrefix) {
			continue
		}
		if params.LogGroupClass != "" && lg.LogGroupClass != params.LogGroupClass {
			continue
		}
		out = append(out, lg)
		if params.MaxItems > 0 && int32(len(out)) >= params.MaxItems {
			break
		}
	}
	return out, nil
}

func (m *Mock) DescribeQueryDefinitions(ctx context.Context) ([]SavedQuery, error) {
	if err := m.enter("DescribeQueryDefinitions"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.savedQueries, nil
}

func (m *Mock) StartQuery(ctx context.Context, params StartQueryParams) (string, error) {
	if err := m.enter("StartQuery"); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryID, nil
}

func (m *Mock) GetQueryResults(ctx context.Context, queryID string) (*QueryOutcome, error) {
	if err := m.enter("GetQueryResults"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if errs := m.pollErrs[queryID]; len(errs) > 0 {
		err := errs[0]
		m.pollErrs[queryID] = errs[1:]
		return nil, err
	}

	script := m.results[queryID]
	if len(script) == 0 {
		return nil, NewQueryError(ErrRemoteAPI, "unknown query ID "+queryID, "")
	}
	outcome := script[0]
	if len(script) > 1 {
		m.results[queryID] = script[1:]
	}
	return outcome, nil
}

func (m *Mock) StopQuery(ctx context.Context, queryID string) (bool, error) {
	if err := m.enter("StopQuery"); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopSuccess[queryID], nil
}

func (m *Mock) ListAnomalyDetectors(ctx context.Context, logGroupARN string) ([]AnomalyDetector, error) {
	if err := m.enter("ListAnomalyDetectors"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detectors, nil
}

func (m *Mock) ListAnomalies(ctx context.Context, detectorARN string) ([]Anomaly, error) {
	if err := m.enter("ListAnomalies"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anomalies[detectorARN], nil
}
