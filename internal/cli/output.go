package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Room:
		o.printRoom(v)
	case LeaderboardResult:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealth(v)
	default:
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Username)
	fmt.Printf("  ID:     %s\n", p.ID)
	if p.Avatar != "" {
		fmt.Printf("  Avatar: %s\n", p.Avatar)
	}
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s (%s)\n", r.Name, r.Code)
	fmt.Printf("  Status:   %s\n", r.Status)
	fmt.Printf("  Duration: %ds\n", r.Duration)
	fmt.Printf("  Players:  %d/%d\n", len(r.Players), r.MaxPlayers)
	for _, p := range r.Players {
		marker := " "
		if p.IsHost {
			marker = "*"
		}
		ready := ""
		if p.IsReady {
			ready = " [ready]"
		}
		if !p.Connected {
			ready += " [disconnected]"
		}
		fmt.Printf("    %s %s%s\n", marker, p.Username, ready)
	}
}

func (o *Output) printLeaderboard(l LeaderboardResult) {
	if len(l.Results) == 0 {
		fmt.Println("Leaderboard is empty.")
		return
	}
	fmt.Printf("%-5s %-20s %-6s %-9s %s\n", "RANK", "PLAYER", "WPM", "ACCURACY", "WHEN")
	for _, e := range l.Results {
		fmt.Printf("%-5d %-20s %-6d %-9.1f %s\n",
			e.Rank, e.Username, e.WPM, e.Accuracy, e.RecordedAt.Local().Format("2006-01-02 15:04"))
	}
}

func (o *Output) printHealth(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Active rooms: %d\n", h.ActiveRooms)
}
