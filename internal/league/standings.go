package league

import "sort"

// Less is the standings order: points, goal difference and goals-for
// descending, then name and id ascending so no two teams compare equal.
func Less(a, b Team) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if gdA, gdB := a.GoalDifference(), b.GoalDifference(); gdA != gdB {
		return gdA > gdB
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// RankTeams sorts the teams into standings order and numbers them from 1.
func RankTeams(teams []Team) []Standing {
	sorted := make([]Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})

	table := make([]Standing, 0, len(sorted))
	for i, t := range sorted {
		table = append(table, Standing{
			Position:       i + 1,
			Team:           t,
			Played:         t.Played(),
			GoalDifference: t.GoalDifference(),
		})
	}
	return table
}
