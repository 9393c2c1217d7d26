package commentary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jimmy058910/replitballgame-sub002/internal/game"
)

// featuredPlayer is the player a line leads with: the runner, the passer, the
// tackler, the victim of an injury.
func featuredPlayer(evt game.Event) *game.Player {
	switch e := evt.(type) {
	case game.Run:
		return e.Runner
	case game.PassComplete:
		return e.Passer
	case game.PassIncomplete:
		return e.Passer
	case game.Tackle:
		return e.Tackler
	case game.Knockdown:
		return e.Blocker
	case game.Fumble:
		return e.Carrier
	case game.Interception:
		return e.Defender
	case game.Injury:
		return e.Player
	case game.Score:
		return e.Scorer
	}
	return nil
}

// vars builds the substitution set for one event. Placeholders not present in
// the chosen template are simply unused.
func vars(evt game.Event, ctx game.CommentaryContext) map[string]string {
	out := map[string]string{
		"half":       strconv.Itoa(ctx.Half),
		"home_score": strconv.Itoa(ctx.HomeScore),
		"away_score": strconv.Itoa(ctx.AwayScore),
	}

	if p := featuredPlayer(evt); p != nil {
		out["player"] = p.Name
	}

	switch e := evt.(type) {
	case game.Run:
		out["yards"] = strconv.Itoa(e.Yards)
	case game.PassComplete:
		out["target"] = e.Receiver.Name
		out["yards"] = strconv.Itoa(e.Yards)
	case game.PassIncomplete:
		if e.Intended != nil {
			out["target"] = e.Intended.Name
		}
	case game.Tackle:
		out["target"] = e.Carrier.Name
	case game.Knockdown:
		out["target"] = e.Victim.Name
	case game.Fumble:
		if e.ForcedBy != nil {
			out["target"] = e.ForcedBy.Name
		}
	case game.Interception:
		out["target"] = e.Passer.Name
	case game.Injury:
		out["severity"] = severityText(e.Severity)
	}

	return out
}

func substitute(tmpl string, vars map[string]string) string {
	out := tmpl
	for key, val := range vars {
		out = strings.ReplaceAll(out, "{"+key+"}", val)
	}
	return out
}

func severityText(s game.HealthStatus) string {
	switch s {
	case game.HealthMinorInjury:
		return "shaken up"
	case game.HealthModerateInjury:
		return "limping badly"
	case game.HealthSevereInjury:
		return "down and not getting up"
	}
	return "being looked at"
}

// fallbackLine covers event types with no registered pools, including the
// synthetic phase markers.
func fallbackLine(evt game.Event) string {
	switch e := evt.(type) {
	case game.PhaseChange:
		switch e.Type {
		case game.EventKickoff:
			if e.Half == 2 {
				return "The second half is underway!"
			}
			return "Kickoff! We're underway!"
		case game.EventHalftime:
			return fmt.Sprintf("Halftime! The score stands %d-%d.", e.HomeScore, e.AwayScore)
		case game.EventOvertime:
			return fmt.Sprintf("Level at %d-%d, we're going to sudden-death overtime!", e.HomeScore, e.AwayScore)
		case game.EventFullTime:
			return fmt.Sprintf("Full time! Final score %d-%d.", e.HomeScore, e.AwayScore)
		}
	case game.PossessionChange:
		if e.To == game.SideHome {
			return "The home side takes over possession."
		}
		return "Possession changes hands to the visitors."
	}
	return "Play continues."
}
