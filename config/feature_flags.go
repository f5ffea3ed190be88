package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags manages feature toggles. Every surface beyond the core
// tracking loop (attendance, tasks, insights) sits behind a flag so a
// deployment can ship the tracker without the extras.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool
}

// Predefined feature flag names.
const (
	// === Planner Features ===
	FeaturePlannerWeekly = "planner.weekly" // weekly plan generation and saving

	// === Gamification Features ===
	FeatureGamification = "gamification" // focus sessions, XP, streaks, badges

	// === Data Portability ===
	FeatureArchive = "archive" // export and import endpoints

	// === Timetable ===
	FeatureTimetable = "timetable" // weekly class schedule
)

// defaultFeatures returns the built-in flag set. Everything ships enabled;
// flags exist to turn surfaces off, not to gate unfinished work.
func defaultFeatures() map[string]*Feature {
	features := map[string]*Feature{
		FeaturePlannerWeekly: {
			Name:        FeaturePlannerWeekly,
			Description: "Weekly plan generation and saved plan history",
			Enabled:     true,
		},
		FeatureGamification: {
			Name:        FeatureGamification,
			Description: "Focus sessions, XP, levels, streaks and badges",
			Enabled:     true,
		},
		FeatureArchive: {
			Name:        FeatureArchive,
			Description: "Export and import of the full record set",
			Enabled:     true,
		},
		FeatureTimetable: {
			Name:        FeatureTimetable,
			Description: "Weekly class schedule",
			Enabled:     true,
		},
	}
	return features
}

// LoadFeatureFlags builds the flag set, applying environment overrides.
// A flag named "planner.weekly" is overridden by FEATURE_PLANNER_WEEKLY.
func LoadFeatureFlags() *FeatureFlags {
	features := defaultFeatures()

	for name, f := range features {
		if val := os.Getenv(envName(name)); val != "" {
			if enabled, err := strconv.ParseBool(val); err == nil {
				f.Enabled = enabled
			}
		}
	}

	return &FeatureFlags{features: features}
}

// IsEnabled reports whether the named feature is on. Unknown names are off.
func (ff *FeatureFlags) IsEnabled(name string) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	f, ok := ff.features[name]
	return ok && f.Enabled
}

// Set overrides a flag at runtime. Used by tests.
func (ff *FeatureFlags) Set(name string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	if f, ok := ff.features[name]; ok {
		f.Enabled = enabled
		return
	}
	ff.features[name] = &Feature{Name: name, Enabled: enabled}
}

// All returns a snapshot of every flag, for the diagnostics surface.
func (ff *FeatureFlags) All() []Feature {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	out := make([]Feature, 0, len(ff.features))
	for _, f := range ff.features {
		out = append(out, *f)
	}
	return out
}

// envName converts a flag name to its override variable:
// "planner.weekly" -> "FEATURE_PLANNER_WEEKLY".
func envName(flag string) string {
	s := strings.ToUpper(flag)
	s = strings.NewReplacer(".", "_", "-", "_").Replace(s)
	return "FEATURE_" + s
}
