package combat

// Hit records a projectile striking a player.
type Hit struct {
	PlayerID     string
	ProjectileID string
	OwnerID      *string

	Before int
	After  int
}

// Eliminated reports whether this hit took the player's last hit point.
func (h Hit) Eliminated() bool {
	return h.Before > 0 && h.After == 0
}
