package config

import "sync"

// PlayerSettings holds interaction configuration
type PlayerSettings struct {
	mu               sync.RWMutex
	reach            int     // targeting distance in blocks
	mouseSensitivity float32 // degrees per pixel of mouse motion
}

var globalPlayerSettings = &PlayerSettings{
	reach:            8,
	mouseSensitivity: 1.0 / 8.0,
}

// GetReach returns the targeting ray length in blocks
func GetReach() int {
	globalPlayerSettings.mu.RLock()
	defer globalPlayerSettings.mu.RUnlock()
	return globalPlayerSettings.reach
}

// SetReach sets the targeting ray length in blocks
func SetReach(blocks int) {
	globalPlayerSettings.mu.Lock()
	defer globalPlayerSettings.mu.Unlock()

	if blocks < 1 {
		blocks = 1
	}
	if blocks > 64 {
		blocks = 64
	}

	globalPlayerSettings.reach = blocks
}

// GetMouseSensitivity returns degrees of rotation per pixel of mouse motion
func GetMouseSensitivity() float32 {
	globalPlayerSettings.mu.RLock()
	defer globalPlayerSettings.mu.RUnlock()
	return globalPlayerSettings.mouseSensitivity
}

// SetMouseSensitivity sets degrees of rotation per pixel of mouse motion
func SetMouseSensitivity(s float32) {
	globalPlayerSettings.mu.Lock()
	defer globalPlayerSettings.mu.Unlock()
	if s <= 0 {
		s = 1.0 / 8.0
	}
	globalPlayerSettings.mouseSensitivity = s
}
