package crex

import (
	"fmt"

	"github.com/crickslab/crex-api/internal/usecase"
)

// The upstream exposes the same logical object under different keys
// depending on page template and site version. Each logical target is
// resolved through an ordered candidate table: later candidates are tried
// only when earlier ones are absent. Supporting a new upstream shape is a
// table edit, not a new branch.

type pathCandidate struct {
	name string
	path []string
}

var appPropsCandidates = []pathCandidate{
	{name: "pageProps", path: []string{"props", "pageProps"}},
	{name: "appProps", path: []string{"props", "appProps"}},
}

// The live-match template nests the content wrapper one level deeper,
// inside a "data" object.
var matchWrapperCandidates = []pathCandidate{
	{name: "matchDetails", path: []string{"matchDetails"}},
	{name: "dataMatchDetails", path: []string{"data", "matchDetails"}},
}

var matchListCandidates = []pathCandidate{
	{name: "matchList", path: []string{"matchList"}},
	{name: "seriesMatches", path: []string{"seriesMatches"}},
	{name: "initialStateMatchList", path: []string{"initialState", "matchList"}},
}

func resolveAppProps(root map[string]any) (map[string]any, bool) {
	for _, candidate := range appPropsCandidates {
		if props, ok := digMap(root, candidate.path...); ok {
			return props, true
		}
	}
	return nil, false
}

// resolveMatchWrapper returns the match/content wrapper for a scorecard,
// live, or squads page. A missing wrapper after all fallbacks is a hard
// precondition failure; a wrapper whose match object is empty means the
// page resolved but carries no match.
func resolveMatchWrapper(root map[string]any) (map[string]any, error) {
	props, ok := resolveAppProps(root)
	if !ok {
		return nil, fmt.Errorf("%w: no app-level props in payload", usecase.ErrRequiredDataMissing)
	}

	var wrapper map[string]any
	for _, candidate := range matchWrapperCandidates {
		if found, ok := digMap(props, candidate.path...); ok {
			wrapper = found
			break
		}
	}
	if wrapper == nil {
		return nil, fmt.Errorf("%w: no match wrapper under app props", usecase.ErrRequiredDataMissing)
	}

	m, ok := mapField(wrapper, "match")
	if !ok || len(m) == 0 {
		return nil, fmt.Errorf("%w: match object is empty", usecase.ErrMatchNotFound)
	}

	return wrapper, nil
}

// resolveMatchList returns the raw schedule entries. Candidates are tried
// in priority order and the first non-empty list wins; as a last resort the
// first schedule container carrying a non-empty list is used.
func resolveMatchList(root map[string]any) ([]any, error) {
	props, ok := resolveAppProps(root)
	if !ok {
		return nil, fmt.Errorf("%w: no app-level props in payload", usecase.ErrRequiredDataMissing)
	}

	for _, candidate := range matchListCandidates {
		if list, ok := digList(props, candidate.path...); ok && len(list) > 0 {
			return list, nil
		}
	}

	for _, item := range listField(props, "containers") {
		container, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if list := listField(container, "matchList"); len(list) > 0 {
			return list, nil
		}
	}

	return nil, fmt.Errorf("%w: no match list in schedule payload", usecase.ErrRequiredDataMissing)
}
