package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/logscout/logscout/internal/platform"
)

// SyntaxElement is one searchable unit of the reference: a command or a
// function category.
type SyntaxElement struct {
	Name        string  `json:"name"`
	ElementType string  `json:"element_type"`
	Description string  `json:"description"`
	Syntax      string  `json:"syntax,omitempty"`
	Score       float64 `json:"relevance_score,omitempty"`
}

// Documentation is the payload returned for every lookup type.
type Documentation struct {
	QueryType       string          `json:"query_type"`
	Content         any             `json:"content"`
	MatchedElements []SyntaxElement `json:"matched_elements,omitempty"`
	TotalElements   int             `json:"total_elements"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
}

// indexDoc is the flattened form of an element fed to the full-text index.
type indexDoc struct {
	Name        string `json:"name"`
	ElementType string `json:"element_type"`
	Description string `json:"description"`
	Syntax      string `json:"syntax"`
	Body        string `json:"body"`
}

// Store serves the embedded reference and answers full-text searches
// over it. Safe for concurrent use once built.
type Store struct {
	index    bleve.Index
	elements map[string]SyntaxElement
}

// NewStore builds the in-memory search index over the embedded
// reference. The index holds a few dozen documents, so construction is
// cheap enough to do at startup.
func NewStore() (*Store, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create syntax index: %w", err)
	}

	s := &Store{index: idx, elements: make(map[string]SyntaxElement)}

	for name, cmd := range commands {
		doc := indexDoc{
			Name:        name,
			ElementType: "command",
			Description: cmd.Description,
			Syntax:      cmd.Syntax,
			Body:        commandBody(cmd),
		}
		if err := s.add("command/"+name, doc); err != nil {
			return nil, err
		}
	}
	for name, cat := range functionCategories {
		doc := indexDoc{
			Name:        name,
			ElementType: "function_category",
			Description: cat.Description,
			Syntax:      strings.Join(cat.Functions, ", "),
			Body:        categoryBody(cat),
		}
		if err := s.add("function/"+name, doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) add(id string, doc indexDoc) error {
	if err := s.index.Index(id, doc); err != nil {
		return fmt.Errorf("index %s: %w", id, err)
	}
	s.elements[id] = SyntaxElement{
		Name:        doc.Name,
		ElementType: doc.ElementType,
		Description: doc.Description,
		Syntax:      doc.Syntax,
	}
	return nil
}

func commandBody(cmd CommandDoc) string {
	var b strings.Builder
	b.WriteString(cmd.Behavior)
	for _, ex := range cmd.Examples {
		b.WriteString(" ")
		b.WriteString(ex.Title)
		b.WriteString(" ")
		b.WriteString(ex.Query)
		b.WriteString(" ")
		b.WriteString(ex.Explanation)
	}
	for _, tip := range cmd.Tips {
		b.WriteString(" ")
		b.WriteString(tip)
	}
	for _, lim := range cmd.Limitations {
		b.WriteString(" ")
		b.WriteString(lim)
	}
	return b.String()
}

func categoryBody(cat FunctionCategoryDoc) string {
	var b strings.Builder
	for _, ex := range cat.Examples {
		b.WriteString(" ")
		b.WriteString(ex.Title)
		b.WriteString(" ")
		b.WriteString(ex.Query)
		b.WriteString(" ")
		b.WriteString(ex.Explanation)
	}
	return b.String()
}

// Overview returns a summary of everything the reference covers.
func (s *Store) Overview() Documentation {
	return Documentation{
		QueryType: "overview",
		Content: map[string]any{
			"description":         "CloudWatch Logs Insights query syntax reference",
			"commands":            sortedKeys(commands),
			"function_categories": sortedKeys(functionCategories),
			"example_categories":  sortedKeys(exampleCategories),
			"available_types":     []string{"overview", "commands", "functions", "examples", "search", "best_practices", "troubleshooting"},
		},
		TotalElements: len(s.elements),
	}
}

// Command returns the documentation for a single command, or every
// command when name is empty.
func (s *Store) Command(name string) (Documentation, error) {
	if name == "" {
		return Documentation{
			QueryType:     "commands",
			Content:       commands,
			TotalElements: len(commands),
		}, nil
	}
	key := strings.ToLower(strings.TrimSpace(name))
	cmd, ok := commands[key]
	if !ok {
		return Documentation{}, platform.NewQueryError(platform.ErrDocNotFound,
			fmt.Sprintf("unknown command %q", name),
			"List available commands with query_type \"commands\" and no filter")
	}
	return Documentation{
		QueryType:     "commands",
		Content:       map[string]CommandDoc{key: cmd},
		TotalElements: 1,
		Metadata:      map[string]any{"filter": key},
	}, nil
}

// FunctionCategory returns the documentation for one function category,
// or every category when name is empty.
func (s *Store) FunctionCategory(name string) (Documentation, error) {
	if name == "" {
		return Documentation{
			QueryType:     "functions",
			Content:       functionCategories,
			TotalElements: len(functionCategories),
		}, nil
	}
	key := strings.ToLower(strings.TrimSpace(name))
	cat, ok := functionCategories[key]
	if !ok {
		return Documentation{}, platform.NewQueryError(platform.ErrDocNotFound,
			fmt.Sprintf("unknown function category %q", name),
			"List available categories with query_type \"functions\" and no filter")
	}
	return Documentation{
		QueryType:     "functions",
		Content:       map[string]FunctionCategoryDoc{key: cat},
		TotalElements: 1,
		Metadata:      map[string]any{"filter": key},
	}, nil
}

// Examples returns worked queries, optionally narrowed to a category.
func (s *Store) Examples(category string) (Documentation, error) {
	if category == "" {
		return Documentation{
			QueryType:     "examples",
			Content:       exampleCategories,
			TotalElements: len(exampleCategories),
		}, nil
	}
	key := strings.ToLower(strings.TrimSpace(category))
	exs, ok := exampleCategories[key]
	if !ok {
		return Documentation{}, platform.NewQueryError(platform.ErrDocNotFound,
			fmt.Sprintf("unknown example category %q", category),
			fmt.Sprintf("Available categories: %s", strings.Join(sortedKeys(exampleCategories), ", ")))
	}
	return Documentation{
		QueryType:     "examples",
		Content:       map[string][]Example{key: exs},
		TotalElements: len(exs),
		Metadata:      map[string]any{"filter": key},
	}, nil
}

// BestPractices returns the query authoring guidance list.
func (s *Store) BestPractices() Documentation {
	return Documentation{
		QueryType:     "best_practices",
		Content:       bestPractices,
		TotalElements: len(bestPractices),
	}
}

// Troubleshooting returns the common-failure playbook.
func (s *Store) Troubleshooting() Documentation {
	return Documentation{
		QueryType:     "troubleshooting",
		Content:       troubleshooting,
		TotalElements: len(troubleshooting),
	}
}

const defaultSearchLimit = 10

// Search runs a full-text query over commands and function categories
// and returns the matching elements ranked by relevance.
func (s *Store) Search(term string, limit int) (Documentation, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Documentation{}, platform.NewQueryError(platform.ErrInvalidParameter,
			"search requires a non-empty filter term",
			"Pass the text to search for in the filter parameter")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(term), limit, 0, false)
	res, err := s.index.Search(req)
	if err != nil {
		return Documentation{}, platform.WrapQueryError(platform.ErrDocNotFound,
			fmt.Sprintf("search for %q failed", term),
			"Try a simpler single-word term", err)
	}

	matched := make([]SyntaxElement, 0, len(res.Hits))
	for _, hit := range res.Hits {
		el, ok := s.elements[hit.ID]
		if !ok {
			continue
		}
		el.Score = hit.Score
		matched = append(matched, el)
	}

	return Documentation{
		QueryType:       "search",
		Content:         fmt.Sprintf("%d elements matched %q", len(matched), term),
		MatchedElements: matched,
		TotalElements:   len(matched),
		Metadata: map[string]any{
			"search_term": term,
			"total_hits":  res.Total,
		},
	}, nil
}

// Lookup dispatches a query_type string to the matching accessor.
func (s *Store) Lookup(queryType, filter string) (Documentation, error) {
	switch strings.ToLower(strings.TrimSpace(queryType)) {
	case "", "overview":
		return s.Overview(), nil
	case "commands":
		return s.Command(filter)
	case "functions":
		return s.FunctionCategory(filter)
	case "examples":
		return s.Examples(filter)
	case "search":
		return s.Search(filter, defaultSearchLimit)
	case "best_practices":
		return s.BestPractices(), nil
	case "troubleshooting":
		return s.Troubleshooting(), nil
	default:
		return Documentation{}, platform.NewQueryError(platform.ErrInvalidParameter,
			fmt.Sprintf("unknown query_type %q", queryType),
			"Use one of: overview, commands, functions, examples, search, best_practices, troubleshooting")
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
