package commentary

import "github.com/jimmy058910/replitballgame-sub002/internal/game"

// defaultRegistry is the shipped template set. Pools are ordered
// neutral-first; optional flavors follow. Placeholders: {player}, {target},
// {yards}, {severity}, {half}, {home_score}, {away_score}.
var defaultRegistry = Registry{
	game.EventRun: {
		{Flavor: FlavorNeutral, Templates: []string{
			"{player} grinds out {yards} yards up the middle.",
			"{player} finds a crease and picks up {yards}.",
			"A patient carry from {player} for {yards} yards.",
			"{player} bounces outside for a gain of {yards}.",
			"{player} lowers a shoulder and pushes ahead for {yards}.",
			"Handoff to {player}, who churns forward for {yards} yards.",
		}},
		{Flavor: FlavorRace, Race: game.RaceHuman, Templates: []string{
			"{player} runs with textbook discipline, {yards} yards on the carry.",
			"Nothing fancy from {player}, just honest yardage: {yards} more.",
			"{player} follows the blockers the way the playbook draws it, {yards} yards.",
		}},
		{Flavor: FlavorRace, Race: game.RaceSylvan, Templates: []string{
			"{player} glides through the line like wind through branches, {yards} yards!",
			"Impossible footwork from the sylvan {player}! {yards} yards on the weave.",
			"{player} slips three tackles without being touched. {yards} yards of pure grace.",
		}},
		{Flavor: FlavorRace, Race: game.RaceGryll, Templates: []string{
			"{player} simply runs THROUGH the defender. {yards} bruising yards.",
			"The gryll {player} drags half the defense along for {yards} yards.",
			"You don't tackle {player}, you just slow the carry. {yards} more yards.",
		}},
		{Flavor: FlavorRace, Race: game.RaceLumina, Templates: []string{
			"{player} flashes into the gap in a streak of light, {yards} yards!",
			"Blink and you missed it. {player} with {yards} radiant yards.",
			"The lumina {player} leaves afterimages on the turf. {yards} yards gained.",
		}},
		{Flavor: FlavorRace, Race: game.RaceUmbra, Templates: []string{
			"Where did {player} come from?! {yards} yards out of the shadows.",
			"{player} vanishes into traffic and reappears {yards} yards downfield.",
			"The defense never saw {player}. Shadow-step for {yards} yards.",
		}},
		{Flavor: FlavorSkill, Templates: []string{
			"BREAKAWAY! {player} hits top gear and is GONE for {yards} yards!",
			"{player} turns the corner and outruns the entire pursuit, {yards} yards!",
			"That's elite speed on display! {player} with a {yards}-yard burst!",
		}},
		{Flavor: FlavorContextual, Templates: []string{
			"Huge carry at the biggest moment! {player} with {yards} clutch yards!",
			"With the game on the line, {player} delivers {yards} yards!",
			"{player} refuses to go down! {yards} yards when it matters most!",
		}},
	},

	game.EventPassComplete: {
		{Flavor: FlavorNeutral, Templates: []string{
			"{player} connects with {target} for {yards} yards.",
			"Clean pocket, clean throw. {player} to {target}, {yards} yards.",
			"{player} zips it to {target} on the slant for {yards}.",
			"{target} hauls in the pass from {player}, good for {yards} yards.",
			"{player} stands tall and finds {target} over the middle for {yards}.",
		}},
		{Flavor: FlavorRace, Race: game.RaceHuman, Templates: []string{
			"{player} goes through the progressions and takes the smart throw to {target}.",
			"Fundamentals win games. {player} to {target} for {yards} steady yards.",
		}},
		{Flavor: FlavorRace, Race: game.RaceSylvan, Templates: []string{
			"{player} arcs it through a forest of arms to {target}, {yards} yards!",
			"A feather-soft touch from {player} drops right into {target}'s hands.",
		}},
		{Flavor: FlavorRace, Race: game.RaceGryll, Templates: []string{
			"{player} rifles it through a defender's helmet to {target}. {yards} yards!",
			"That throw from {player} would break a lesser catcher's hands. {target} holds on.",
		}},
		{Flavor: FlavorRace, Race: game.RaceLumina, Templates: []string{
			"A laser from {player}! {target} catches pure light for {yards} yards.",
			"{player} threads a gleaming spiral to {target}, {yards} yards.",
		}},
		{Flavor: FlavorRace, Race: game.RaceUmbra, Templates: []string{
			"{player} throws into a window nobody else could see. {target} for {yards}.",
			"The pass from {player} materializes in {target}'s hands out of nowhere.",
		}},
		{Flavor: FlavorSkill, Templates: []string{
			"Pinpoint accuracy! {player} drops it in the only place {target} could catch it!",
			"A perfect strike from {player}, {yards} yards to {target}!",
			"You cannot defend a throw like that. {player} to {target}, {yards} yards.",
		}},
		{Flavor: FlavorContextual, Templates: []string{
			"Nerves of steel! {player} finds {target} with everything on the line!",
			"Clutch connection! {player} to {target} for {yards} massive yards!",
		}},
	},

	game.EventPassIncomplete: {
		{Flavor: FlavorNeutral, Templates: []string{
			"{player}'s pass sails over {target} and falls incomplete.",
			"{player} fires wide of {target}. No connection.",
			"Pressure gets home and {player} has to throw it away.",
			"{target} can't quite stretch far enough. Incomplete.",
			"The pass from {player} skips off the turf. Nothing doing.",
		}},
		{Flavor: FlavorContextual, Templates: []string{
			"Not now of all times! {player} misfires under the heaviest pressure of the night.",
			"The moment might be getting to {player}. Another incompletion late.",
		}},
	},

	game.EventTackle: {
		{Flavor: FlavorNeutral, Templates: []string{
			"{player} wraps up {target} and brings the play to a halt.",
			"Solid form tackle by {player} on {target}.",
			"{target} is met in the hole by {player}. No gain.",
			"{player} strings the play out and drops {target}.",
		}},
		{Flavor: FlavorRace, Race: game.RaceGryll, Templates: []string{
			"{player} hits {target} like a landslide. You could hear that in the cheap seats.",
			"The ground shakes as {player} plants {target} into the turf.",
		}},
		{Flavor: FlavorRace, Race: game.RaceUmbra, Templates: []string{
			"{target} never saw {player} coming. Tackled out of the shadows.",
			"{player} ghosts through the blocking and swallows {target} whole.",
		}},
		{Flavor: FlavorSkill, Templates: []string{
			"DEVASTATING hit! {player} absolutely levels {target}!",
			"A power tackle from {player}! {target} will feel that one tomorrow!",
			"{player} unloads on {target}! That's a collision, not a tackle!",
		}},
		{Flavor: FlavorContextual, Templates: []string{
			"A championship-caliber stop by {player} when the defense needed it most!",
			"{player} drops {target} cold with the game hanging in the balance!",
		}},
	},

	game.EventKnockdown: {
		{Flavor: FlavorNeutral, Templates: []string{
			"{player} flattens {target} away from the ball.",
			"A crunching block by {player} sends {target} sprawling.",
			"{target} gets pancaked by {player}.",
		}},
		{Flavor: FlavorRace, Race: game.RaceGryll, Templates: []string{
			"{player} introduces {target} to the turf, gryll style.",
			"That block from {player} belongs in a demolition reel.",
		}},
	},

	game.EventFumble: {
		{Flavor: FlavorNeutral, Templates: []string{
			"The ball squirts loose from {player}! Turnover!",
			"{player} loses the handle and the defense pounces on it!",
			"Fumble! {player} coughs it up and possession flips!",
			"{target} punches it free from {player}! The defense recovers!",
		}},
		{Flavor: FlavorContextual, Templates: []string{
			"Disaster at the worst possible moment! {player} fumbles it away!",
			"A late fumble from {player}! That could decide this contest!",
		}},
	},

	game.EventInterception: {
		{Flavor: FlavorNeutral, Templates: []string{
			"INTERCEPTED! {player} jumps the route and picks off {target}!",
			"{player} reads {target}'s eyes the whole way. Turnover!",
			"The pass from {target} lands in the wrong hands. {player} with the pick!",
		}},
		{Flavor: FlavorRace, Race: game.RaceUmbra, Templates: []string{
			"{player} melts out of the shadows to steal the pass from {target}!",
			"Nobody covers ground like an umbra. {player} with a phantom interception!",
		}},
		{Flavor: FlavorContextual, Templates: []string{
			"A CLUTCH interception by {player}! The late-game pressure forced the mistake!",
			"{target} cracks under the pressure and {player} makes him pay! Picked off!",
		}},
	},

	game.EventInjury: {
		{Flavor: FlavorNeutral, Templates: []string{
			"{player} is slow to get up after that one. He looks {severity}.",
			"The trainers are out for {player}, who is {severity}.",
			"Play pauses while {player}, clearly {severity}, is helped to the sideline.",
		}},
	},

	game.EventScore: {
		{Flavor: FlavorNeutral, Templates: []string{
			"SCORE! {player} crosses the line and the crowd erupts!",
			"{player} punches it in! The score now stands {home_score}-{away_score}!",
			"Six more on the board! {player} finishes the drive!",
			"{player} dives across the plane! That's a score!",
		}},
		{Flavor: FlavorRace, Race: game.RaceHuman, Templates: []string{
			"A workmanlike finish from {player}. That's how you're taught to score.",
		}},
		{Flavor: FlavorRace, Race: game.RaceSylvan, Templates: []string{
			"{player} dances the final five yards untouched. A sylvan masterpiece!",
		}},
		{Flavor: FlavorRace, Race: game.RaceGryll, Templates: []string{
			"{player} carries three defenders over the line with him! Gryll power!",
		}},
		{Flavor: FlavorRace, Race: game.RaceLumina, Templates: []string{
			"{player} blazes into the end zone trailing light! What a finish!",
		}},
		{Flavor: FlavorRace, Race: game.RaceUmbra, Templates: []string{
			"{player} slips through the goal-line stand like smoke. Score!",
		}},
		{Flavor: FlavorContextual, Templates: []string{
			"AN ABSOLUTELY MASSIVE SCORE! {player} delivers in the clutch! {home_score}-{away_score}!",
			"With everything on the line, {player} finds the end zone! Unbelievable!",
		}},
	},
}
