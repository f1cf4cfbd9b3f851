package explorer

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestShortestPath(t *testing.T) {
	src := newFakeSource()
	src.page("Alpha", "Beta", "Delta")
	src.page("Beta", "Gamma")
	src.page("Delta", "Gamma")
	src.page("Gamma")
	e := newTestExplorer(src)

	path, err := e.ShortestPath(context.Background(), "Alpha", "Gamma", 3)
	if err != nil {
		t.Fatalf("ShortestPath() error = %v", err)
	}
	if len(path) != 3 || path[0] != "Alpha" || path[2] != "Gamma" {
		t.Errorf("path = %v, want a 2-hop chain from Alpha to Gamma", path)
	}
}

func TestShortestPathSameArticle(t *testing.T) {
	e := newTestExplorer(newFakeSource())

	path, err := e.ShortestPath(context.Background(), "Alpha", "alpha", 3)
	if err != nil {
		t.Fatalf("ShortestPath() error = %v", err)
	}
	if !reflect.DeepEqual(path, []string{"Alpha"}) {
		t.Errorf("path = %v, want [Alpha]", path)
	}
}

func TestShortestPathDirectLink(t *testing.T) {
	src := newFakeSource()
	src.page("Alpha", "Beta")
	src.page("Beta")
	e := newTestExplorer(src)

	path, err := e.ShortestPath(context.Background(), "Alpha", "Beta", 3)
	if err != nil {
		t.Fatalf("ShortestPath() error = %v", err)
	}
	if !reflect.DeepEqual(path, []string{"Alpha", "Beta"}) {
		t.Errorf("path = %v, want [Alpha Beta]", path)
	}
}

func TestShortestPathNotFound(t *testing.T) {
	src := newFakeSource()
	src.page("Alpha", "Beta")
	src.page("Beta")
	e := newTestExplorer(src)

	_, err := e.ShortestPath(context.Background(), "Alpha", "Omega", 2)
	if !errors.Is(err, ErrPathNotFound) {
		t.Errorf("ShortestPath() error = %v, want ErrPathNotFound", err)
	}
}
