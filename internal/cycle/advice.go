package cycle

// Advice holds the daily guidance shown for a phase.
type Advice struct {
	Mood       string
	Nutrition  string
	Meditation string
	Exercise   string
}

var adviceByPhase = map[Phase]Advice{
	PhaseMenstrual: {
		Mood:       "Rest and be gentle with yourself. This is a time for reflection.",
		Nutrition:  "Focus on warm foods, iron-rich meals, and stay hydrated.",
		Meditation: "Try gentle breathing exercises and restorative practices.",
		Exercise:   "Low-intensity yoga, gentle walks, and stretching.",
	},
	PhaseFollicular: {
		Mood:       "Energy is rising! Great time for new projects and creativity.",
		Nutrition:  "High-energy foods, lean proteins, and fresh vegetables.",
		Meditation: "Light meditation to harness your growing energy.",
		Exercise:   "Cardio, dance, or any high-energy activities you enjoy.",
	},
	PhaseOvulation: {
		Mood:       "Peak confidence and social energy. Perfect for important conversations.",
		Nutrition:  "High-protein foods and antioxidant-rich fruits.",
		Meditation: "Confidence-boosting and grounding practices.",
		Exercise:   "Strength training and high-intensity workouts.",
	},
	PhaseLuteal: {
		Mood:       "Slow down and prepare for rest. Practice self-compassion.",
		Nutrition:  "Magnesium-rich foods, complex carbs, and comfort foods in moderation.",
		Meditation: "Sleep meditation and stress-relief practices.",
		Exercise:   "Slow yoga, swimming, and gentle movement.",
	},
}

// AdviceFor returns the advice for phase. Unknown phases get follicular advice.
func AdviceFor(phase Phase) Advice {
	if a, ok := adviceByPhase[phase]; ok {
		return a
	}
	return adviceByPhase[PhaseFollicular]
}
