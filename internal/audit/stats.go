package audit

import (
	"sort"

	"github.com/quillnotes/quill/pkg/types"
)

// CommandCount is one entry of the top-commands ranking.
type CommandCount struct {
	CommandID string `json:"commandId"`
	Count     int    `json:"count"`
}

// Stats summarizes the retained events.
type Stats struct {
	Total    int                  `json:"total"`
	BySource map[types.Source]int `json:"bySource"`
	// SuccessRate is successes / total, 0 when the log is empty.
	SuccessRate float64        `json:"successRate"`
	TopCommands []CommandCount `json:"topCommands"`
}

// Stats computes summary statistics over the retained events.
// TopCommands ranks command IDs by descending invocation count; ties
// keep first-seen order.
func (l *Log) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := Stats{
		Total:    len(l.events),
		BySource: make(map[types.Source]int),
	}

	successes := 0
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, ev := range l.events {
		stats.BySource[ev.Source]++
		if ev.Success {
			successes++
		}
		if _, seen := firstSeen[ev.CommandID]; !seen {
			firstSeen[ev.CommandID] = i
		}
		counts[ev.CommandID]++
	}

	if stats.Total > 0 {
		stats.SuccessRate = float64(successes) / float64(stats.Total)
	}

	top := make([]CommandCount, 0, len(counts))
	for id, n := range counts {
		top = append(top, CommandCount{CommandID: id, Count: n})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return firstSeen[top[i].CommandID] < firstSeen[top[j].CommandID]
	})
	stats.TopCommands = top

	return stats
}
