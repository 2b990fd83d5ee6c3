package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// FortuneLevel is the category of a drawn blessing. It selects which
// decoration background and text panel are used when rendering.
type FortuneLevel string

const (
	LevelGreat FortuneLevel = "daji"    // 大吉
	LevelUpper FortuneLevel = "zhongji" // 中吉
	LevelSmall FortuneLevel = "xiaoji"  // 小吉
	LevelPlain FortuneLevel = "ji"      // 吉
	LevelLate  FortuneLevel = "moji"    // 末吉
)

// Levels returns every fortune level in display order. Asset sets are
// required to cover exactly this enumeration.
func Levels() []FortuneLevel {
	return []FortuneLevel{LevelGreat, LevelUpper, LevelSmall, LevelPlain, LevelLate}
}

var levelLabels = map[FortuneLevel]string{
	LevelGreat: "大吉",
	LevelUpper: "中吉",
	LevelSmall: "小吉",
	LevelPlain: "吉",
	LevelLate:  "末吉",
}

// Valid reports whether l is a known fortune level.
func (l FortuneLevel) Valid() bool {
	_, ok := levelLabels[l]
	return ok
}

// Label returns the human-readable name of the level.
func (l FortuneLevel) Label() string {
	return levelLabels[l]
}

// BlessingRecord is one possible draw outcome.
type BlessingRecord struct {
	Level    FortuneLevel `json:"level"`
	Object   string       `json:"object"`    // paired object (结缘物)
	Color    string       `json:"color"`     // named color (缘彩)
	ColorHex string       `json:"color_hex"` // tint for the base layer
	Verse    string       `json:"verse"`     // blessing couplet, wrapped at render time
	Activity string       `json:"activity"`  // recommended activity, rendered with a 宜 prefix
	Weight   int          `json:"weight"`
}

// Table is the finite, immutable set of drawable blessing records.
type Table struct {
	Records []BlessingRecord
}
