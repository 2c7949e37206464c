package tools

import (
	"testing"
	"time"

	"github.com/logscout/logscout/internal/knowledge"
	"github.com/logscout/logscout/internal/ops"
	"github.com/logscout/logscout/internal/platform"
)

func TestDescribeLogGroupsTool(t *testing.T) {
	t.Parallel()

	mock := platform.NewMock().
		WithLogGroups(
			platform.LogGroup{LogGroupName: "/aws/lambda/api", LogGroupClass: "STANDARD"},
			platform.LogGroup{LogGroupName: "/ecs/web", LogGroupClass: "STANDARD"},
		).
		WithSavedQueries(platform.SavedQuery{
			Name:          "api-errors",
			QueryString:   "filter @message like /ERROR/",
			LogGroupNames: []string{"/aws/lambda/api"},
		})
	srv, reg := testServer(t, mock)
	RegisterDescribeLogGroups(srv, reg, "us-east-1")

	result := callTool(t, srv, "describe_log_groups", map[string]any{
		"logGroupNamePrefix": "/aws/",
	})

	var metadata ops.LogsMetadata
	decodeResult(t, result, &metadata)
	if len(metadata.LogGroups) != 1 || metadata.LogGroups[0].LogGroupName != "/aws/lambda/api" {
		t.Errorf("unexpected log groups: %+v", metadata.LogGroups)
	}
	if len(metadata.SavedQueries) != 1 || metadata.SavedQueries[0].Name != "api-errors" {
		t.Errorf("unexpected saved queries: %+v", metadata.SavedQueries)
	}
}

func TestExecuteQueryTool(t *testing.T) {
	t.Parallel()

	mock := platform.NewMock().
		WithQueryID("q-1").
		WithQueryResults("q-1", &platform.QueryOutcome{
			QueryID: "q-1",
			Status:  platform.StatusComplete,
			Results: []map[string]string{{"@message": "hello"}},
		})
	srv, reg := testServer(t, mock)
	RegisterExecuteQuery(srv, reg, "us-east-1", 10*time.Second)

	result := callTool(t, srv, "execute_log_insights_query", map[string]any{
		"logGroupNames": []string{"/aws/lambda/api"},
		"queryString":   "fields @message | limit 10",
		"startTime":     "2025-04-19T20:00:00+00:00",
		"endTime":       "2025-04-19T21:00:00+00:00",
	})

	var outcome platform.QueryOutcome
	decodeResult(t, result, &outcome)
	if outcome.QueryID != "q-1" || outcome.Status != platform.StatusComplete {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
}

func TestExecuteQueryTool_BothScopesRejected(t *testing.T) {
	t.Parallel()

	mock := platform.NewMock().WithQueryID("q-1")
	srv, reg := testServer(t, mock)
	RegisterExecuteQuery(srv, reg, "us-east-1", 10*time.Second)

	result := callTool(t, srv, "execute_log_insights_query", map[string]any{
		"logGroupNames":       []string{"/aws/lambda/api"},
		"logGroupIdentifiers": []string{"arn:aws:logs:us-east-1:1:log-group:/aws/lambda/api"},
		"queryString":         "fields @message",
		"startTime":           "2025-04-19T20:00:00+00:00",
		"endTime":             "2025-04-19T21:00:00+00:00",
	})

	payload := decodeToolError(t, result)
	if payload["code"] != platform.ErrInvalidParameter {
		t.Errorf("expected %s, got %+v", platform.ErrInvalidParameter, payload)
	}
	if got := mock.Calls("StartQuery"); got != 0 {
		t.Errorf("StartQuery must not be called, got %d calls", got)
	}
}

func TestGetQueryResultsTool(t *testing.T) {
	t.Parallel()

	mock := platform.NewMock().WithQueryResults("q-1", &platform.QueryOutcome{
		QueryID: "q-1",
		Status:  platform.StatusComplete,
		Results: []map[string]string{{"@message": "done"}},
	})
	srv, reg := testServer(t, mock)
	RegisterGetQueryResults(srv, reg, "us-east-1", 10*time.Second)

	result := callTool(t, srv, "get_logs_insight_query_results", map[string]any{
		"queryId": "q-1",
	})

	var outcome platform.QueryOutcome
	decodeResult(t, result, &outcome)
	if outcome.Status != platform.StatusComplete || len(outcome.Results) != 1 {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
}

func TestCancelQueryTool(t *testing.T) {
	t.Parallel()

	mock := platform.NewMock().WithStopSuccess("q-1", true)
	srv, reg := testServer(t, mock)
	RegisterCancelQuery(srv, reg, "us-east-1")

	result := callTool(t, srv, "cancel_logs_insight_query", map[string]any{
		"queryId": "q-1",
	})

	var cancel ops.CancelResult
	decodeResult(t, result, &cancel)
	if !cancel.Success {
		t.Errorf("expected success: %+v", cancel)
	}
}

func TestAnalyzeLogGroupTool(t *testing.T) {
	t.Parallel()

	mock := platform.NewMock().
		WithQueryID("q-pattern").
		WithQueryResults("q-pattern", &platform.QueryOutcome{
			QueryID: "q-pattern",
			Status:  platform.StatusComplete,
			Results: []map[string]string{
				{"@pattern": "ERROR at <*>", "@sampleCount": "2"},
			},
		})
	srv, reg := testServer(t, mock)
	RegisterAnalyzeLogGroup(srv, reg, "us-east-1", 10*time.Second)

	result := callTool(t, srv, "analyze_log_group", map[string]any{
		"logGroupArn": "arn:aws:logs:us-east-1:1:log-group:/aws/lambda/api",
		"startTime":   "2025-04-19T20:00:00+00:00",
		"endTime":     "2025-04-19T21:00:00+00:00",
	})

	var analysis ops.AnalysisResult
	decodeResult(t, result, &analysis)
	if len(analysis.TopPatterns) != 1 || len(analysis.TopErrorPatterns) != 1 {
		t.Errorf("unexpected analysis: %+v", analysis)
	}
}

func TestQuerySyntaxTool(t *testing.T) {
	t.Parallel()

	store, err := knowledge.NewStore()
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	srv, _ := testServer(t, platform.NewMock())
	RegisterQuerySyntax(srv, store)

	result := callTool(t, srv, "get_query_syntax_documentation", map[string]any{
		"queryType":   "commands",
		"commandName": "pattern",
	})

	var doc knowledge.Documentation
	decodeResult(t, result, &doc)
	if doc.QueryType != "commands" || doc.TotalElements != 1 {
		t.Errorf("unexpected documentation: %+v", doc)
	}

	search := callTool(t, srv, "get_query_syntax_documentation", map[string]any{
		"queryType":  "search",
		"searchTerm": "filter",
	})
	var searchDoc knowledge.Documentation
	decodeResult(t, search, &searchDoc)
	if len(searchDoc.MatchedElements) == 0 {
		t.Error("expected search matches")
	}

	unknown := callTool(t, srv, "get_query_syntax_documentation", map[string]any{
		"queryType":   "commands",
		"commandName": "frobnicate",
	})
	payload := decodeToolError(t, unknown)
	if payload["code"] != platform.ErrDocNotFound {
		t.Errorf("expected %s, got %+v", platform.ErrDocNotFound, payload)
	}
}
