package search

import (
	"github.com/baytlab/bayt/core"
)

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate stages during retrieval.
type RetrievalMonitor interface {
	Start(query string)
	ExactHit(candidate core.Candidate)
	AfterSparseSearch(candidates []core.Candidate)
	AfterDenseSearch(candidates []core.Candidate)
	EmbeddingFailed(err error)
	AfterFusion(matches []core.Match)
	FallbackHit(match core.Match)
	Finish(matches []core.Match)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) ExactHit(_ core.Candidate)             {}
func (n *noopMonitor) AfterSparseSearch(_ []core.Candidate)  {}
func (n *noopMonitor) AfterDenseSearch(_ []core.Candidate)   {}
func (n *noopMonitor) EmbeddingFailed(_ error)               {}
func (n *noopMonitor) AfterFusion(_ []core.Match)            {}
func (n *noopMonitor) FallbackHit(_ core.Match)              {}
func (n *noopMonitor) Finish(_ []core.Match)                 {}
