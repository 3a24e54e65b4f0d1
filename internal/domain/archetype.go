package domain

// TimeOfDay is the coarse bucket an hour of the day falls into.
type TimeOfDay string

const (
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
	Evening   TimeOfDay = "Evening"
	LateNight TimeOfDay = "LateNight"
)

// ProductivityProfile is the account's peak activity hour and its bucket.
type ProductivityProfile struct {
	PeakHour  int       `json:"peak_hour"`
	TimeOfDay TimeOfDay `json:"time_of_day"`
}

// Archetype is the categorical label summarising the dominant activity pattern.
type Archetype string

const (
	PullRequestPro Archetype = "Pull Request Pro"
	Reviewer       Archetype = "Reviewer"
	WeekendWarrior Archetype = "Weekend Warrior"
	NightOwl       Archetype = "Night Owl"
	EarlyBird      Archetype = "Early Bird"
	GridPainter    Archetype = "Grid Painter"
	Consistent     Archetype = "Consistent"
	Planner        Archetype = "Planner"
	CommunityStar  Archetype = "Community Star"
	Tinkerer       Archetype = "Tinkerer"
)

// Archetypes lists every label in classifier order.
var Archetypes = []Archetype{
	PullRequestPro,
	Reviewer,
	WeekendWarrior,
	NightOwl,
	EarlyBird,
	GridPainter,
	Consistent,
	Planner,
	CommunityStar,
	Tinkerer,
}

var archetypeDescriptions = map[Archetype]string{
	PullRequestPro: "Ships through pull requests; a big share of the year went into PRs.",
	Reviewer:       "Keeps the bar high by reviewing other people's code.",
	WeekendWarrior: "Saturdays and Sundays are for side projects.",
	NightOwl:       "Does the best work after dark.",
	EarlyBird:      "Commits land before most people have had coffee.",
	GridPainter:    "The contribution graph is a wall of green.",
	Consistent:     "Shows up and pushes code week after week.",
	Planner:        "Thinks in issues before writing code.",
	CommunityStar:  "People follow and star the work.",
	Tinkerer:       "Experiments and builds things for fun.",
}

// Description returns a one-line summary of the archetype.
func (a Archetype) Description() string {
	return archetypeDescriptions[a]
}
