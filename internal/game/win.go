package game

import "github.com/pixil98/go-arena/internal/physics"

// TeamsAlive returns the teams that still have at least one entity with hit
// points. Entities without a team never count.
func TeamsAlive(t *EntityTable) map[string]struct{} {
	alive := make(map[string]struct{})
	t.ForEach(func(_ physics.Handle, m Metadata) {
		if m.TeamID == nil || *m.TeamID == "" || m.HitPoints <= 0 {
			return
		}
		alive[*m.TeamID] = struct{}{}
	})
	return alive
}

// IsWon reports whether exactly one team is alive. When every team has been
// eliminated in the same tick nobody wins.
func IsWon(t *EntityTable) bool {
	return len(TeamsAlive(t)) == 1
}
