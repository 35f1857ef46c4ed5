package engine

import "strings"

// emojiTable maps lowercased English forms to a renderable emoji. Words
// without an entry simply fail CanGenerate for the emoji engine.
var emojiTable = map[string]string{
	"apple":     "🍎",
	"banana":    "🍌",
	"grape":     "🍇",
	"bread":     "🍞",
	"egg":       "🥚",
	"milk":      "🥛",
	"water":     "💧",
	"fire":      "🔥",
	"sun":       "☀️",
	"moon":      "🌙",
	"star":      "⭐",
	"rain":      "🌧️",
	"snow":      "❄️",
	"tree":      "🌳",
	"flower":    "🌸",
	"mountain":  "⛰️",
	"sea":       "🌊",
	"dog":       "🐶",
	"cat":       "🐱",
	"bird":      "🐦",
	"fish":      "🐟",
	"horse":     "🐴",
	"pig":       "🐷",
	"rabbit":    "🐰",
	"tiger":     "🐯",
	"bear":      "🐻",
	"monkey":    "🐵",
	"house":     "🏠",
	"school":    "🏫",
	"hospital":  "🏥",
	"car":       "🚗",
	"bus":       "🚌",
	"train":     "🚆",
	"airplane":  "✈️",
	"ship":      "🚢",
	"bicycle":   "🚲",
	"book":      "📚",
	"pencil":    "✏️",
	"clock":     "⏰",
	"telephone": "📞",
	"computer":  "💻",
	"money":     "💰",
	"key":       "🔑",
	"door":      "🚪",
	"chair":     "🪑",
	"heart":     "❤️",
	"eye":       "👁️",
	"hand":      "✋",
	"foot":      "🦶",
	"king":      "👑",
	"doctor":    "🩺",
	"music":     "🎵",
	"soccer":    "⚽",
	"baseball":  "⚾",
	"gift":      "🎁",
	"birthday":  "🎂",
	"happy":     "😊",
	"sad":       "😢",
	"angry":     "😠",
	"sleep":     "😴",
	"run":       "🏃",
	"swim":      "🏊",
	"eat":       "🍽️",
	"cold":      "🥶",
	"hot":       "🥵",
}

// emojiFor resolves an English form to an emoji, or "" when none is
// known.
func emojiFor(english string) string {
	return emojiTable[strings.ToLower(strings.TrimSpace(english))]
}
