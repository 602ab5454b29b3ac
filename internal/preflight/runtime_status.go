package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tsvoice/internal/config"
)

// CheckServerFromConfig evaluates voice server readiness from config and DNS.
func CheckServerFromConfig(cfg *config.Config) Result {
	const name = "Voice server"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.Server.Host) == "" {
		return Result{Name: name, Detail: "Missing host"}
	}
	return CheckServer(context.Background(), cfg.Server.Host, cfg.Server.Port)
}

// SoundProbe reports the kernel's current sound card snapshot.
type SoundProbe struct {
	Detected bool
	Cards    []string
}

// ProbeSoundCards reads the ALSA card registry. An empty path reads the
// default /proc/asound/cards.
func ProbeSoundCards(path string) SoundProbe {
	if strings.TrimSpace(path) == "" {
		path = "/proc/asound/cards"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SoundProbe{}
	}
	var cards []string
	for _, line := range strings.Split(string(data), "\n") {
		if name := parseCardLine(line); name != "" {
			cards = append(cards, name)
		}
	}
	if len(cards) == 0 {
		return SoundProbe{}
	}
	return SoundProbe{Detected: true, Cards: cards}
}

// parseCardLine extracts the card description from a registry entry. Card
// lines look like " 0 [PCH            ]: HDA-Intel - HDA Intel PCH";
// continuation lines and the no-soundcards marker are skipped.
func parseCardLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] < '0' || trimmed[0] > '9' {
		return ""
	}
	idx := strings.Index(trimmed, " - ")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(trimmed[idx+3:])
}

// CardsDetail renders a display-friendly summary for status UIs.
func (p SoundProbe) CardsDetail() string {
	if !p.Detected {
		return "No sound cards detected"
	}
	return fmt.Sprintf("%d sound card(s): %s", len(p.Cards), strings.Join(p.Cards, ", "))
}
