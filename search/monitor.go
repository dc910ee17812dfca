package search

import "github.com/poiesic/deskrag/core"

// QueryMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during
// retrieval.
type QueryMonitor interface {
	Start(query string)
	AfterRetrieval(results []*core.SearchResult)
	AfterClassification(intent core.QueryIntent)
	AfterFiltering(docs []*core.Document)
	Finish(docs []*core.Document)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) AfterRetrieval(_ []*core.SearchResult)  {}
func (n *noopMonitor) AfterClassification(_ core.QueryIntent) {}
func (n *noopMonitor) AfterFiltering(_ []*core.Document)      {}
func (n *noopMonitor) Finish(_ []*core.Document)              {}
