package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yoBruxo/PTbotKND/internal/api/response"
)

// Output handles formatting results as text or JSON
type Output struct {
	format string
}

// NewOutput creates an Output for the given format
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print writes the result in the configured format
func (o *Output) Print(result any) {
	if o.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
		return
	}
	fmt.Print(textFor(result))
}

func textFor(result any) string {
	switch v := result.(type) {
	case response.Party:
		return partyText(v)
	case response.PartyList:
		if len(v.Parties) == 0 {
			return "no parties created yet\n"
		}
		var b strings.Builder
		for _, p := range v.Parties {
			b.WriteString(partyText(p))
			b.WriteString("\n")
		}
		return b.String()
	case response.OutcomeResponse:
		var b strings.Builder
		fmt.Fprintf(&b, "outcome: %s\n", v.Outcome)
		if v.PreviousRole != "" {
			fmt.Fprintf(&b, "previous role: %s\n", v.PreviousRole)
		}
		if v.Role != "" {
			fmt.Fprintf(&b, "role: %s\n", v.Role)
		}
		if v.Party != nil {
			b.WriteString(partyText(*v.Party))
		}
		return b.String()
	case response.Status:
		return fmt.Sprintf("status: %s\nuptime: %s\nactive parties: %d\ntotal parties: %d\n",
			v.Status, v.Uptime, v.OpenParties, v.TotalParties)
	case response.Health:
		return fmt.Sprintf("status: %s\n", v.Status)
	default:
		data, _ := json.Marshal(result)
		return string(data) + "\n"
	}
}

func partyText(p response.Party) string {
	var b strings.Builder
	status := strings.ToUpper(p.Status)
	fmt.Fprintf(&b, "PT %d [%s] created by %s\n", p.ID, status, p.CreatorID)
	for _, slot := range p.Roster {
		members := "none"
		if len(slot.Members) > 0 {
			members = strings.Join(slot.Members, ", ")
		}
		fmt.Fprintf(&b, "  %s %s (%d/%d): %s\n", slot.Emoji, slot.Role, len(slot.Members), slot.Capacity, members)
	}
	fmt.Fprintf(&b, "  total: %d/%d players\n", p.TotalOccupancy, p.MaxSize)
	if p.CloseReason != "" {
		fmt.Fprintf(&b, "  closed: %s\n", p.CloseReason)
	}
	return b.String()
}
