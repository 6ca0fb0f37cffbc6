package config

// CategoryWeights orders help output; lower comes first. Categories not
// listed here sink to the bottom.
var CategoryWeights = map[string]int{
	"🕯️ Information":   0,
	"🎭 Roles":          10,
	"🎲 Game Mechanics": 20,
	"🧹 Cleanup":        30,
	"🕒 Time":           40,
	"⚙️ Settings":      50,
	"🛠 Core":           60,
}
