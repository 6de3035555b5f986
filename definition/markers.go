package definition

// Marker classes used by the dictionary source to tag each field of an
// entry. They are a de facto external contract: when the upstream markup
// changes, this is the only place to update.
const (
	ClassHeadword     = "AdresseDefinition"
	ClassCategory     = "CatgramDefinition"
	ClassOrigin       = "OrigineDefinition"
	ClassSense        = "DivisionDefinition"
	ClassSenseNumber  = "numDef"
	ClassExample      = "ExempleDefinition"
	ClassRelatedLabel = "LibelleSynonyme"
	ClassRelatedList  = "Synonymes"
)

// Label substrings, matched case-insensitively against the text of a
// ClassRelatedLabel element. They are French words from the source and
// must not be translated.
const (
	synonymMarker = "synonym"
	antonymMarker = "contrair"
)

var (
	selHeadword = "h2." + ClassHeadword
	selCategory = "p." + ClassCategory
	selOrigin   = "p." + ClassOrigin
	selSense    = "li." + ClassSense
	selNumber   = "." + ClassSenseNumber
	selExample  = "." + ClassExample
	selLabel    = "." + ClassRelatedLabel
	selExamples = "span." + ClassExample
)
