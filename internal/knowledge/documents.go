// Package knowledge holds the embedded CloudWatch Logs Insights query
// syntax reference and a full-text index over it, so agents can look up
// commands, functions, and examples without internet access.
package knowledge

// Example is one worked query with its explanation.
type Example struct {
	Title       string `json:"title"`
	Query       string `json:"query"`
	Explanation string `json:"explanation"`
}

// CommandDoc documents one query language command.
type CommandDoc struct {
	Description string    `json:"description"`
	Syntax      string    `json:"syntax"`
	Behavior    string    `json:"behavior,omitempty"`
	Examples    []Example `json:"examples,omitempty"`
	Tips        []string  `json:"tips,omitempty"`
	Limitations []string  `json:"limitations,omitempty"`
}

// FunctionCategoryDoc documents one family of built-in functions.
type FunctionCategoryDoc struct {
	Description string    `json:"description"`
	Functions   []string  `json:"functions"`
	Examples    []Example `json:"examples,omitempty"`
}

// TroubleshootingIssue is one common failure with its remedy.
type TroubleshootingIssue struct {
	Issue    string `json:"issue"`
	Cause    string `json:"cause"`
	Solution string `json:"solution"`
}

var commands = map[string]CommandDoc{
	"display": {
		Description: "Displays a specific field or fields in query results",
		Syntax:      "display field1, field2, ...",
		Behavior:    "Shows only the fields you specify. If multiple display commands are used, only the final one takes effect.",
		Examples: []Example{{
			Title:       "Display one field",
			Query:       "fields @message\n| parse @message \"[*] *\" as loggingType, loggingMessage\n| filter loggingType = \"ERROR\"\n| display loggingMessage",
			Explanation: "Extracts logging type and message, filters for ERROR logs, and displays only the message",
		}},
		Tips: []string{
			"Use display only once in a query for best results",
			"If used multiple times, only the last display command takes effect",
		},
	},
	"fields": {
		Description: "Shows specific fields in query results with support for functions and operations",
		Syntax:      "fields field1, field2, expression as alias",
		Behavior:    "If multiple fields commands are used without display, all specified fields are shown",
		Examples: []Example{{
			Title:       "Display specific fields",
			Query:       "fields @timestamp, @message\n| sort @timestamp desc\n| limit 20",
			Explanation: "Shows timestamp and message fields, sorted by timestamp in descending order, limited to 20 results",
		}, {
			Title:       "Create extracted fields",
			Query:       "fields ispresent(@message) as hasMessage, @timestamp",
			Explanation: "Creates a new field 'hasMessage' based on whether @message field exists",
		}},
		Tips: []string{
			"Use fields instead of display when you need to use functions",
			"Support for creating new fields with 'as' keyword",
		},
	},
	"filter": {
		Description: "Filters log events that match one or more conditions",
		Syntax:      "filter expression",
		Behavior:    "Keeps only log events for which the expression evaluates to true",
		Examples: []Example{{
			Title:       "Filter by substring match",
			Query:       "fields @timestamp, @message\n| filter @message like /Exception/\n| limit 20",
			Explanation: "Keeps events whose message matches the regular expression Exception",
		}, {
			Title:       "Case-insensitive error search",
			Query:       "filter @message like /(?i)(error|exception|fail|timeout|fatal)/",
			Explanation: "Matches error-related terms regardless of case",
		}, {
			Title:       "Filter by field comparison",
			Query:       "filter statusCode >= 500",
			Explanation: "Keeps events with a server error status code",
		}},
		Tips: []string{
			"Comparison operators: =, !=, <, <=, >, >=",
			"Boolean operators: and, or, not",
			"Use like and not like with a string or a /regex/",
			"Use in to test set membership: filter statusCode in [300, 301, 302]",
		},
	},
	"pattern": {
		Description: "Automatically clusters log events into recurring textual patterns",
		Syntax:      "pattern field",
		Behavior:    "Groups events by shared structure; dynamic tokens are replaced by placeholders. Returns @pattern, @ratio, @sampleCount, @logSamples",
		Examples: []Example{{
			Title:       "Most common message shapes",
			Query:       "pattern @message\n| sort @sampleCount desc\n| limit 5",
			Explanation: "Finds the five most frequent message patterns in the selected time range",
		}, {
			Title:       "Pattern after filtering",
			Query:       "filter @message like /(?i)error/\n| pattern @message\n| limit 5",
			Explanation: "Clusters only error-related events into patterns",
		}},
		Limitations: []string{
			"pattern requires the Standard log class",
		},
	},
	"parse": {
		Description: "Extracts ephemeral fields from a log field using a glob or regular expression",
		Syntax:      "parse field \"glob with *\" as field1, field2 | parse field /regex with (?<name>...)/",
		Examples: []Example{{
			Title:       "Glob extraction",
			Query:       "parse @message \"user=*, method:*, latency := *\" as @user, @method, @latency",
			Explanation: "Extracts three fields from a structured message",
		}, {
			Title:       "Regex extraction",
			Query:       "parse @message /user=(?<user2>.*?), method:(?<method2>.*?), latency := (?<latency2>.*?)/",
			Explanation: "Same extraction with named capture groups",
		}},
	},
	"sort": {
		Description: "Sorts the query results by one or more fields",
		Syntax:      "sort field [asc|desc], ...",
		Examples: []Example{{
			Title:       "Newest events first",
			Query:       "fields @timestamp, @message | sort @timestamp desc | limit 25",
			Explanation: "Shows the 25 most recent events",
		}},
	},
	"stats": {
		Description: "Aggregates log events with statistical functions, optionally grouped",
		Syntax:      "stats aggregate(field) [as alias] [by grouping[, ...]]",
		Examples: []Example{{
			Title:       "Exceptions per hour",
			Query:       "filter @message like /Exception/\n| stats count(*) as exceptionCount by bin(1h)\n| sort exceptionCount desc",
			Explanation: "Counts exception events bucketed into one-hour bins",
		}, {
			Title:       "Average latency by method",
			Query:       "stats avg(@latency) by @method",
			Explanation: "Computes mean latency per request method",
		}},
		Tips: []string{
			"Aggregates: count, count_distinct, sum, avg, min, max, pct, stddev, earliest, latest",
			"Use bin(period) to group by time buckets",
		},
	},
	"limit": {
		Description: "Limits the number of log events returned by the query",
		Syntax:      "limit number",
		Examples: []Example{{
			Title:       "Cap result size",
			Query:       "fields @timestamp, @message | sort @timestamp desc | limit 25",
			Explanation: "Returns at most 25 events",
		}},
		Tips: []string{
			"Always bound query output; unbounded results can overwhelm the caller",
		},
	},
	"dedup": {
		Description: "Removes duplicate results based on specific field values",
		Syntax:      "dedup field1[, field2, ...]",
		Behavior:    "Keeps the first result for each unique combination of the listed fields",
		Examples: []Example{{
			Title:       "Latest event per server",
			Query:       "fields @timestamp, server, severity, @message\n| sort @timestamp desc\n| dedup server",
			Explanation: "Shows the most recent event for each server value",
		}},
		Limitations: []string{
			"Only sort may follow dedup in a query",
		},
	},
	"unmask": {
		Description: "Displays the full content of log events masked by a data protection policy",
		Syntax:      "unmask(@message)",
		Examples: []Example{{
			Title:       "Reveal masked content",
			Query:       "fields @timestamp, unmask(@message) | limit 20",
			Explanation: "Shows masked fields in clear text; requires the logs:Unmask permission",
		}},
	},
}

var functionCategories = map[string]FunctionCategoryDoc{
	"string": {
		Description: "Functions for string manipulation in query expressions",
		Functions: []string{
			"isempty(str)", "isblank(str)", "concat(str1, str2, ...)", "ltrim(str)",
			"rtrim(str)", "trim(str)", "strlen(str)", "toupper(str)", "tolower(str)",
			"substr(str, start[, length])", "replace(str, search, replacement)", "strcontains(str, search)",
		},
		Examples: []Example{{
			Title:       "Normalize and compare",
			Query:       "fields tolower(level) as lvl | filter lvl = \"error\"",
			Explanation: "Lowercases the level field before comparing",
		}},
	},
	"datetime": {
		Description: "Functions for datetime arithmetic and formatting",
		Functions: []string{
			"bin(period)", "datefloor(timestamp, period)", "dateceil(timestamp, period)",
			"fromMillis(number)", "toMillis(timestamp)", "now()",
		},
		Examples: []Example{{
			Title:       "Events per 5 minutes",
			Query:       "stats count(*) by bin(5m)",
			Explanation: "Buckets events into five-minute bins",
		}},
	},
	"numeric": {
		Description: "Numeric operations and math functions",
		Functions: []string{
			"abs(a)", "ceil(a)", "floor(a)", "greatest(a, b, ...)", "least(a, b, ...)",
			"log(a)", "sqrt(a)", "exp(a)",
		},
	},
	"general": {
		Description: "General-purpose functions",
		Functions: []string{
			"ispresent(field)", "coalesce(field1, field2, ...)",
		},
		Examples: []Example{{
			Title:       "First non-missing value",
			Query:       "fields coalesce(requestId, traceId, \"unknown\") as id",
			Explanation: "Falls back across fields until one is present",
		}},
	},
	"json": {
		Description: "Functions for handling JSON-formatted log fields",
		Functions: []string{
			"jsonParse(str)", "jsonExtract(jsonBlob, path)",
		},
	},
	"ip": {
		Description: "Functions for IP address matching",
		Functions: []string{
			"isValidIp(str)", "isValidIpV4(str)", "isValidIpV6(str)",
			"isIpInSubnet(str, subnet)", "isIpv4InSubnet(str, subnet)", "isIpv6InSubnet(str, subnet)",
		},
		Examples: []Example{{
			Title:       "Requests from a subnet",
			Query:       "filter isIpInSubnet(clientIp, \"192.168.1.0/24\")",
			Explanation: "Keeps events whose client IP falls inside the subnet",
		}},
	},
}

var exampleCategories = map[string][]Example{
	"common_patterns": {
		{
			Title:       "Recent errors",
			Query:       "fields @timestamp, @message\n| filter @message like /(?i)error/\n| sort @timestamp desc\n| limit 20",
			Explanation: "The 20 most recent error-like events",
		},
		{
			Title:       "Exceptions per hour",
			Query:       "filter @message like /Exception/\n| stats count(*) as exceptionCount by bin(1h)\n| sort exceptionCount desc",
			Explanation: "Hourly exception counts, busiest hours first",
		},
		{
			Title:       "Top message patterns",
			Query:       "pattern @message\n| sort @sampleCount desc\n| limit 5",
			Explanation: "The five most common message shapes",
		},
		{
			Title:       "Log volume per group",
			Query:       "stats count(*) by @logGroup",
			Explanation: "How many events each log group contributed",
		},
	},
	"advanced_queries": {
		{
			Title:       "Latency percentiles by route",
			Query:       "filter ispresent(@duration)\n| stats avg(@duration), pct(@duration, 95), pct(@duration, 99) by route",
			Explanation: "Mean, p95, and p99 latency per route",
		},
		{
			Title:       "Parse and aggregate",
			Query:       "parse @message \"user=*, latency := *\" as user, latency\n| stats avg(latency) as avgLatency by user\n| sort avgLatency desc\n| limit 10",
			Explanation: "Extracts latency per user and ranks the slowest ten",
		},
		{
			Title:       "Cross-group source selection",
			Query:       "SOURCE logGroups(namePrefix: ['/aws/lambda'])\n| filter @message like /Task timed out/\n| stats count(*) by @logGroup",
			Explanation: "Counts Lambda timeouts across every group under a prefix",
		},
	},
}

var bestPractices = []string{
	"Select only the necessary log groups for each query",
	"Always specify the narrowest possible time range for your queries",
	"Include a limit command or the limit parameter to bound result size",
	"Cancel queries you no longer need; a running query keeps accruing cost",
	"Prefer pattern for exploration before writing narrow filters",
	"Fields starting with @ are discovered automatically by CloudWatch Logs",
}

var troubleshooting = []TroubleshootingIssue{
	{
		Issue:    "Query returns no results",
		Cause:    "Time range does not cover the events, or the filter is too narrow",
		Solution: "Widen the time range, then relax filters one at a time",
	},
	{
		Issue:    "MalformedQueryException on submission",
		Cause:    "Query text does not parse; commonly a missing pipe or an unquoted string",
		Solution: "Separate commands with |, quote string literals, and check command spelling",
	},
	{
		Issue:    "Query keeps timing out",
		Cause:    "Scanning too much data for the wait budget",
		Solution: "Narrow the time range or log group scope; re-poll with the returned queryId instead of resubmitting",
	},
	{
		Issue:    "Throttling errors while polling",
		Cause:    "Too many concurrent queries or polls against the API",
		Solution: "Reduce concurrent queries; polling retries absorb throttling within the wait budget",
	},
	{
		Issue:    "pattern command rejected",
		Cause:    "Log group uses the Infrequent Access class",
		Solution: "pattern requires the Standard log class; use filter and stats instead",
	},
}
