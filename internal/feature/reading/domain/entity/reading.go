// Package entity defines the domain entities for the reading feature.
package entity

// Reading sources. A reading always contains the library sections; the
// gemini variant additionally carries a narrator-generated section.
const (
	SourceLibrary       = "library"
	SourceLibraryGemini = "library+gemini"
)

// Section is a single titled block of interpretive text.
type Section struct {
	Key   string
	Title string
	Body  string
}

// Reading is the assembled interpretation of one order's stored chart.
type Reading struct {
	OrderID   string
	ChartHash string
	Source    string
	Sections  []Section
}

// SignProfile holds the interpretation library's material for one zodiac sign.
type SignProfile struct {
	Title        string   `json:"title"`
	Element      string   `json:"element"`
	Modality     string   `json:"modality"`
	CoreIdentity string   `json:"core_identity"`
	Strengths    []string `json:"strengths"`
	Challenges   []string `json:"challenges"`
	LifePurpose  string   `json:"life_purpose"`
}

// MoonNotes describe the emotional layer associated with a moon sign.
type MoonNotes struct {
	EmotionalNature string
	Needs           string
	NurturingStyle  string
}

// HouseTheme names the life domain governed by one of the twelve houses.
type HouseTheme struct {
	Name        string `json:"name"`
	Theme       string `json:"theme"`
	Description string `json:"description"`
}
