// Package system provides the reference collaborator systems for the
// ECS core: game-side logic (spawn, movement, lifetime, bounds) and
// the rendering/audio seams, all plugged in through the engine.System
// contract.
package system

// System execution priorities (higher runs first).
const (
	PrioritySpawn    = 100
	PriorityLifetime = 90
	PriorityMovement = 80
	PriorityBounds   = 70
	PriorityAudio    = 20
	PriorityRender   = 10 // after all game logic
)
