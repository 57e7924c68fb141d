package check

import (
	"sort"
	"strings"

	"github.com/chambrid/jira-branch-checker/pkg/config"
)

// Sort orders the resolved batch in place. config.SortByStatus (the
// default) compares status labels case-insensitively with ties broken by
// identifier; config.SortByTicket compares identifiers. Both orderings
// are total and stable, so a report over identical input is byte-for-byte
// reproducible.
func Sort(tickets []ResolvedTicket, order string) {
	switch order {
	case config.SortByTicket:
		sort.SliceStable(tickets, func(i, j int) bool {
			return tickets[i].Key < tickets[j].Key
		})
	default:
		sort.SliceStable(tickets, func(i, j int) bool {
			a := strings.ToLower(tickets[i].Status)
			b := strings.ToLower(tickets[j].Status)
			if a != b {
				return a < b
			}
			return tickets[i].Key < tickets[j].Key
		})
	}
}
