package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chambrid/jira-branch-checker/pkg/config"
)

func TestSort_ByStatusCaseInsensitiveWithKeyTiebreak(t *testing.T) {
	tickets := []ResolvedTicket{
		{Key: "B-2", Status: "Done"},
		{Key: "A-1", Status: "in progress"},
		{Key: "A-3", Status: "Done"},
	}

	Sort(tickets, config.SortByStatus)

	want := []ResolvedTicket{
		{Key: "A-3", Status: "Done"},
		{Key: "B-2", Status: "Done"},
		{Key: "A-1", Status: "in progress"},
	}
	assert.Equal(t, want, tickets)
}

func TestSort_StatusLabelsWithResolutionSuffix(t *testing.T) {
	tickets := []ResolvedTicket{
		{Key: "PROJ-9", Status: "Done"},
		{Key: "PROJ-12", Status: "Closed: Fixed"},
	}

	Sort(tickets, config.SortByStatus)

	assert.Equal(t, "PROJ-12", tickets[0].Key, "labels compare as whole strings")
	assert.Equal(t, "PROJ-9", tickets[1].Key)
}

func TestSort_ByTicketKey(t *testing.T) {
	tickets := []ResolvedTicket{
		{Key: "PROJ-2", Status: "Done"},
		{Key: "ABC-9", Status: "Open"},
		{Key: "PROJ-1", Status: "Error: HTTP 404"},
	}

	Sort(tickets, config.SortByTicket)

	keys := make([]string, len(tickets))
	for i, ticket := range tickets {
		keys[i] = ticket.Key
	}
	assert.Equal(t, []string{"ABC-9", "PROJ-1", "PROJ-2"}, keys)
}

func TestSort_ErrorMarkersParticipateLikeAnyLabel(t *testing.T) {
	tickets := []ResolvedTicket{
		{Key: "PROJ-1", Status: "Open"},
		{Key: "PROJ-2", Status: "Error: HTTP 404"},
	}

	Sort(tickets, config.SortByStatus)

	assert.Equal(t, "PROJ-2", tickets[0].Key, "error markers sort by their literal text")
}

func TestSort_UnknownOrderFallsBackToStatus(t *testing.T) {
	tickets := []ResolvedTicket{
		{Key: "PROJ-1", Status: "Open"},
		{Key: "PROJ-2", Status: "Done"},
	}

	Sort(tickets, "bogus")

	assert.Equal(t, "PROJ-2", tickets[0].Key)
}

func TestSort_EmptyAndSingle(t *testing.T) {
	Sort(nil, config.SortByStatus)

	single := []ResolvedTicket{{Key: "PROJ-1", Status: "Done"}}
	Sort(single, config.SortByStatus)
	assert.Equal(t, "PROJ-1", single[0].Key)
}
