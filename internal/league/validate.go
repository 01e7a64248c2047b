package league

import "strings"

// Validate normalizes and checks a sport before it is stored.
func (s *Sport) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return Invalid("sport name is required")
	}
	if s.ScoringUnit == "" {
		s.ScoringUnit = UnitPoints
	}
	switch s.ScoringUnit {
	case UnitGoals, UnitPoints, UnitRuns, UnitSets:
	default:
		return Invalid("unknown scoring unit %q", s.ScoringUnit)
	}
	return nil
}

// Validate normalizes and checks a team's editable fields.
func (t *Team) Validate() error {
	t.Name = strings.TrimSpace(t.Name)
	t.Coach = strings.TrimSpace(t.Coach)
	if t.Name == "" {
		return Invalid("team name is required")
	}
	if t.SportID == "" {
		return Invalid("team sport is required")
	}
	return nil
}

// Validate checks a new fixture. Team membership of the sport is checked
// against the store by the caller.
func (m *Match) Validate() error {
	m.Location = strings.TrimSpace(m.Location)
	if m.SportID == "" {
		return Invalid("match sport is required")
	}
	if m.Team1ID == "" || m.Team2ID == "" {
		return Invalid("both teams are required")
	}
	if m.Team1ID == m.Team2ID {
		return Invalid("a team cannot play itself")
	}
	if _, err := ParseDate("date", m.Date); err != nil {
		return err
	}
	return nil
}
