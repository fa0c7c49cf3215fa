package combat

// ProjectileDamage is the hit points a projectile takes from a player.
const ProjectileDamage = 1

// ApplyDamage subtracts damage from hp, never going below zero.
func ApplyDamage(hp, damage int) int {
	hp -= damage
	if hp < 0 {
		hp = 0
	}
	return hp
}
