package crex

import (
	"errors"
	"testing"

	"github.com/crickslab/crex-api/internal/usecase"
)

func TestResolveMatchWrapper_PagePropsDirect(t *testing.T) {
	root := map[string]any{
		"props": map[string]any{
			"pageProps": map[string]any{
				"matchDetails": map[string]any{
					"match": map[string]any{"title": "a vs b"},
				},
			},
		},
	}

	wrapper, err := resolveMatchWrapper(root)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	m, _ := mapField(wrapper, "match")
	if strField(m, "title") != "a vs b" {
		t.Fatalf("unexpected match title: %q", strField(m, "title"))
	}
}

func TestResolveMatchWrapper_AppPropsNestedData(t *testing.T) {
	root := map[string]any{
		"props": map[string]any{
			"appProps": map[string]any{
				"data": map[string]any{
					"matchDetails": map[string]any{
						"match": map[string]any{"state": "Live"},
					},
				},
			},
		},
	}

	wrapper, err := resolveMatchWrapper(root)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	m, _ := mapField(wrapper, "match")
	if strField(m, "state") != "Live" {
		t.Fatalf("unexpected state: %q", strField(m, "state"))
	}
}

func TestResolveMatchWrapper_EmptyMatchObject(t *testing.T) {
	root := map[string]any{
		"props": map[string]any{
			"pageProps": map[string]any{
				"matchDetails": map[string]any{
					"match": map[string]any{},
				},
			},
		},
	}

	_, err := resolveMatchWrapper(root)
	if !errors.Is(err, usecase.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestResolveMatchWrapper_NoProps(t *testing.T) {
	_, err := resolveMatchWrapper(map[string]any{"props": map[string]any{}})
	if !errors.Is(err, usecase.ErrRequiredDataMissing) {
		t.Fatalf("expected ErrRequiredDataMissing, got %v", err)
	}
}

func TestResolveMatchList_FallbackChain(t *testing.T) {
	root := map[string]any{
		"props": map[string]any{
			"pageProps": map[string]any{
				"matchList":     []any{},
				"seriesMatches": []any{map[string]any{"title": "m1"}},
			},
		},
	}

	items, err := resolveMatchList(root)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected seriesMatches fallback to win, got %d items", len(items))
	}
}

func TestResolveMatchList_ContainerFallback(t *testing.T) {
	root := map[string]any{
		"props": map[string]any{
			"pageProps": map[string]any{
				"containers": []any{
					map[string]any{"kind": "banner"},
					map[string]any{"matchList": []any{map[string]any{"title": "m1"}, map[string]any{"title": "m2"}}},
				},
			},
		},
	}

	items, err := resolveMatchList(root)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected container match list, got %d items", len(items))
	}
}

func TestResolveMatchList_Missing(t *testing.T) {
	root := map[string]any{
		"props": map[string]any{
			"pageProps": map[string]any{},
		},
	}

	_, err := resolveMatchList(root)
	if !errors.Is(err, usecase.ErrRequiredDataMissing) {
		t.Fatalf("expected ErrRequiredDataMissing, got %v", err)
	}
}
