package server

// Instructions is the MCP instructions message injected into the system prompt.
// Kept concise but directive.
const Instructions = `Logscout provides tools for exploring AWS CloudWatch Logs: discovering log groups, running Logs Insights queries, and analyzing log groups for anomalies and recurring patterns. Start with describe_log_groups to find targets. Call get_query_syntax_documentation before composing non-trivial Logs Insights queries; the same reference is readable via cloudwatch://syntax/{path} resources. execute_log_insights_query returns status "Timeout" when a query outlives its wait budget; the query keeps running, so re-poll with get_logs_insight_query_results or stop it with cancel_logs_insight_query.`
