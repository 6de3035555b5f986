package definition

// Header is the identifying metadata of a dictionary entry. Fields are
// empty strings when the source element is absent.
type Header struct {
	Title               string `json:"title"`
	GrammaticalCategory string `json:"grammatical_category"`
	Origin              string `json:"origin"`
}

// Sense is one numbered meaning of an entry. Example, Synonyms and
// Antonyms are nil unless the source supplied them.
type Sense struct {
	Number   string  `json:"number"`
	Text     string  `json:"text"`
	Example  *string `json:"example,omitempty"`
	Synonyms *string `json:"synonyms,omitempty"`
	Antonyms *string `json:"antonyms,omitempty"`
}

// Result is the structured form of one definition fragment.
type Result struct {
	Header Header  `json:"header"`
	Senses []Sense `json:"senses"`
}

// Empty reports whether nothing was extracted: all header fields empty and
// no senses. Callers combine it with "input was non-empty" to decide
// whether to show a no-result message.
func (r Result) Empty() bool {
	return r.Header == (Header{}) && len(r.Senses) == 0
}
