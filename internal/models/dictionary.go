package models

// DictionaryMeaning represents one part-of-speech meaning from the dictionary API
type DictionaryMeaning struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`
}

// DictionaryEntry represents the proxied dictionary lookup result.
// ChineseDefinition is a best-effort translation of the first meaning and
// may be empty when the translation service is unavailable.
type DictionaryEntry struct {
	Word              string              `json:"word"`
	Phonetic          string              `json:"phonetic"`
	Meanings          []DictionaryMeaning `json:"meanings"`
	ChineseDefinition string              `json:"chineseDefinition"`
}

// OCRResult represents the words extracted from a photographed word list
type OCRResult struct {
	Words   []string `json:"words"`
	RawText string   `json:"rawText"`
}

// DashboardStats represents the learner's dashboard aggregates
type DashboardStats struct {
	TodayCount     int `json:"todayCount"`
	TodayCorrect   int `json:"todayCorrect"`
	TotalWrong     int `json:"totalWrong"`
	ImportantWrong int `json:"importantWrong"`
}
