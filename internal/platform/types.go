package platform

import "time"

// DefaultAPITimeout is the per-call timeout applied to each CloudWatch
// Logs API request.
const DefaultAPITimeout = 30 * time.Second

// Query status values as reported by GetQueryResults. StatusTimeout is
// synthesized locally when a wait budget runs out — the remote query is
// still running at that point.
const (
	StatusScheduled = "Scheduled"
	StatusRunning   = "Running"
	StatusComplete  = "Complete"
	StatusFailed    = "Failed"
	StatusCancelled = "Cancelled"
	StatusTimeout   = "Timeout"
)

// IsTerminalStatus reports whether status ends a polling loop.
func IsTerminalStatus(status string) bool {
	return status == StatusComplete || status == StatusFailed || status == StatusCancelled
}

// LogGroup describes a CloudWatch log group. Epoch-ms timestamps from the
// API are converted to ISO-8601 before they reach this struct.
type LogGroup struct {
	LogGroupName         string   `json:"logGroupName"`
	CreationTime         string   `json:"creationTime"`
	RetentionInDays      *int32   `json:"retentionInDays,omitempty"`
	MetricFilterCount    int32    `json:"metricFilterCount"`
	StoredBytes          int64    `json:"storedBytes"`
	KmsKeyID             string   `json:"kmsKeyId,omitempty"`
	DataProtectionStatus string   `json:"dataProtectionStatus,omitempty"`
	InheritedProperties  []string `json:"inheritedProperties,omitempty"`
	LogGroupClass        string   `json:"logGroupClass"`
	LogGroupArn          string   `json:"logGroupArn"`
}

// SavedQuery is a persisted Logs Insights query definition.
type SavedQuery struct {
	Name          string   `json:"name"`
	QueryString   string   `json:"queryString"`
	LogGroupNames []string `json:"logGroupNames,omitempty"`
}

// ListLogGroupsParams narrows a DescribeLogGroups call.
type ListLogGroupsParams struct {
	NamePrefix            string
	LogGroupClass         string
	AccountIdentifiers    []string
	IncludeLinkedAccounts bool
	MaxItems              int32
}

// StartQueryParams is a validated Logs Insights query submission. Exactly
// one of LogGroupNames or LogGroupIdentifiers is set; ops.QueryRequest
// enforces that before this struct is built.
type StartQueryParams struct {
	LogGroupNames       []string
	LogGroupIdentifiers []string
	QueryString         string
	StartTime           int64 // Unix seconds
	EndTime             int64 // Unix seconds
	Limit               int32 // 0 means no explicit limit
}

// QueryStatistics are the performance counters reported with query results.
type QueryStatistics struct {
	BytesScanned   float64 `json:"bytesScanned"`
	RecordsMatched float64 `json:"recordsMatched"`
	RecordsScanned float64 `json:"recordsScanned"`
}

// QueryOutcome is the normalized shape of a GetQueryResults response.
// Results rows are field-name → value maps, in the order the service
// returned them. It is recomputed on every poll, never cached.
type QueryOutcome struct {
	QueryID    string              `json:"queryId"`
	Status     string              `json:"status"`
	Results    []map[string]string `json:"results,omitempty"`
	Statistics *QueryStatistics    `json:"statistics,omitempty"`
	Messages   []string            `json:"messages,omitempty"`
}

// AnomalyDetector describes a CloudWatch Logs anomaly detector.
type AnomalyDetector struct {
	AnomalyDetectorArn    string `json:"anomalyDetectorArn"`
	DetectorName          string `json:"detectorName"`
	AnomalyDetectorStatus string `json:"anomalyDetectorStatus"`
}

// LogSample is one sample log event attached to an anomaly.
type LogSample struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// Anomaly is one finding reported by an anomaly detector. Timestamps and
// histogram keys are ISO-8601; log samples are trimmed to at most one
// entry to keep tool output small.
type Anomaly struct {
	AnomalyDetectorArn string           `json:"anomalyDetectorArn"`
	LogGroupArnList    []string         `json:"logGroupArnList"`
	FirstSeen          string           `json:"firstSeen"`
	LastSeen           string           `json:"lastSeen"`
	Description        string           `json:"description"`
	Priority           string           `json:"priority"`
	PatternRegex       string           `json:"patternRegex"`
	PatternString      string           `json:"patternString"`
	LogSamples         []LogSample      `json:"logSamples"`
	Histogram          map[string]int64 `json:"histogram"`
}
