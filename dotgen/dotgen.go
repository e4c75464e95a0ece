// Package dotgen turns a search run into a Graphviz graph. It plugs into
// the search as an observer, so the solver itself knows nothing about dot
// output.
package dotgen

import (
	"fmt"
	"os"

	"github.com/awalterschulze/gographviz"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

const graphName = "search"

// Recorder implements search.Observer, collecting one node per visited
// configuration and one edge per evaluated move, annotated with the window
// and the value the move came back with.
type Recorder struct {
	g     *board.Geometry
	graph *gographviz.Graph
}

// NewRecorder returns an empty recorder for one search run.
func NewRecorder(g *board.Geometry) *Recorder {
	graph := gographviz.NewGraph()
	graph.SetName(graphName)
	graph.SetDir(true)
	return &Recorder{g: g, graph: graph}
}

func nodeID(pos game.Position) string {
	occupied, owner := pos.Words()
	return fmt.Sprintf("n_%x_%x", occupied, owner)
}

// NodeVisited records the parent -> child edge for one evaluated move.
func (r *Recorder) NodeVisited(parent game.Position, move board.Mask, depth int, alpha, beta, value int32) {
	child := parent.Apply(move)
	pid := nodeID(parent)
	cid := nodeID(child)
	r.graph.AddNode(graphName, pid, nil)
	r.graph.AddNode(graphName, cid, map[string]string{
		"label": fmt.Sprintf("\"col %d\"", r.g.Column(move)),
	})
	r.graph.AddEdge(pid, cid, true, map[string]string{
		"label": fmt.Sprintf("\"a=%d b=%d v=%d d=%d\"", alpha, beta, value, depth),
	})
}

// String renders the collected graph in dot format.
func (r *Recorder) String() string { return r.graph.String() }

// WriteFile writes the dot output to path.
func (r *Recorder) WriteFile(path string) error {
	return os.WriteFile(path, []byte(r.String()), 0644)
}
