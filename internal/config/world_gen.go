package config

import "sync"

// WorldGenSettings holds demo world generation configuration
type WorldGenSettings struct {
	mu            sync.RWMutex
	radius        int   // half-extent of the generated square in blocks
	seed          int64 // 0 selects the flat floor
	hillAmplitude int   // highest surface cell above y = 0 for hills
}

var globalWorldGenSettings = &WorldGenSettings{
	radius:        24,
	seed:          0,
	hillAmplitude: 8,
}

// GetWorldRadius returns the half-extent of the generated world in blocks
func GetWorldRadius() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.radius
}

// SetWorldRadius sets the half-extent of the generated world, clamped to 1..256
func SetWorldRadius(blocks int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()

	if blocks < 1 {
		blocks = 1
	}
	if blocks > 256 {
		blocks = 256
	}
	globalWorldGenSettings.radius = blocks
}

// GetWorldSeed returns the hills seed; 0 means flat
func GetWorldSeed() int64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seed
}

// SetWorldSeed sets the hills seed
func SetWorldSeed(seed int64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seed = seed
}

// GetHillAmplitude returns the tallest hill height in blocks
func GetHillAmplitude() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.hillAmplitude
}

// SetHillAmplitude sets the tallest hill height, clamped to 0..64
func SetHillAmplitude(blocks int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()

	if blocks < 0 {
		blocks = 0
	}
	if blocks > 64 {
		blocks = 64
	}
	globalWorldGenSettings.hillAmplitude = blocks
}
