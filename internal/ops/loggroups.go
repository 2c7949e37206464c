package ops

import (
	"context"
	"regexp"
	"strings"

	"github.com/logscout/logscout/internal/platform"
)

// LogsMetadata is the catalog view: log groups plus the saved queries
// that apply to them.
type LogsMetadata struct {
	LogGroups    []platform.LogGroup   `json:"logGroups"`
	SavedQueries []platform.SavedQuery `json:"savedQueries"`
}

// Saved queries may target log groups indirectly through a SOURCE
// command, e.g. SOURCE logGroups(namePrefix: ['/aws/lambda']).
var (
	sourceCommandRe = regexp.MustCompile(`SOURCE\s+logGroups\((.*?)\)`)
	namePrefixRe    = regexp.MustCompile(`namePrefix:\s*\[(.*?)\]`)
)

// DescribeLogGroups lists log groups matching params together with the
// saved Logs Insights queries applicable to any of them — either by an
// explicit log group name or by a SOURCE name prefix.
func DescribeLogGroups(ctx context.Context, client platform.LogsAPI, params platform.ListLogGroupsParams) (*LogsMetadata, error) {
	groups, err := client.DescribeLogGroups(ctx, params)
	if err != nil {
		return nil, err
	}

	saved, err := client.DescribeQueryDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	targets := make(map[string]bool, len(groups))
	for _, lg := range groups {
		targets[lg.LogGroupName] = true
	}

	var applicable []platform.SavedQuery
	for _, query := range saved {
		if savedQueryApplies(query, targets) {
			applicable = append(applicable, query)
		}
	}

	return &LogsMetadata{LogGroups: groups, SavedQueries: applicable}, nil
}

func savedQueryApplies(query platform.SavedQuery, targets map[string]bool) bool {
	for _, name := range query.LogGroupNames {
		if targets[name] {
			return true
		}
	}
	for _, prefix := range extractSourcePrefixes(query.QueryString) {
		for name := range targets {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
	}
	return false
}

// extractSourcePrefixes pulls namePrefix values out of a query string's
// SOURCE command, when present.
func extractSourcePrefixes(queryString string) []string {
	source := sourceCommandRe.FindStringSubmatch(queryString)
	if source == nil {
		return nil
	}
	prefixList := namePrefixRe.FindStringSubmatch(source[1])
	if prefixList == nil {
		return nil
	}

	var prefixes []string
	for _, raw := range strings.Split(prefixList[1], ",") {
		prefix := strings.Trim(strings.TrimSpace(raw), `'"`)
		if prefix != "" {
			prefixes = append(prefixes, prefix)
		}
	}
	return prefixes
}
