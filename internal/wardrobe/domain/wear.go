package domain

// WearLevel maps a wear count to its tier label. Each band is inclusive on
// its upper bound.
func WearLevel(count int) string {
	switch {
	case count <= 0:
		return "🌱 New Arrival"
	case count <= 5:
		return "👟 Lightly Worn"
	case count <= 15:
		return "🔁 In Rotation"
	case count <= 30:
		return "🧢 Well Worn"
	case count <= 50:
		return "🧵 Long-Term Use"
	case count <= 75:
		return "🏅 Wardrobe MVP"
	default:
		return "🏆 Legacy Item"
	}
}
