// Package definition extracts a structured lexical record from a dictionary
// HTML fragment.
//
// The fragment is loosely structured: fields are identified by marker
// classes (see markers.go), synonym and antonym lists are paired with their
// label by sibling position rather than nesting, and any element may be
// missing. Parse never fails; missing structure degrades to empty fields.
//
// The fragment must already be sanitized by the caller. Parse performs
// structural extraction only.
//
// Usage:
//
//	res := definition.Parse(fragment, 3)
//	fmt.Println(res.Header.Title, len(res.Senses))
package definition

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse extracts the header and at most maxSenses senses from an HTML
// fragment. A negative maxSenses is treated as zero. The input string is
// never modified and the returned Result shares no state with other calls.
func Parse(fragment string, maxSenses int) Result {
	res := Result{Senses: []Sense{}}
	if maxSenses < 0 {
		maxSenses = 0
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return res
	}

	res.Header = Header{
		Title:               firstText(doc.Selection, selHeadword),
		GrammaticalCategory: firstText(doc.Selection, selCategory),
		Origin:              firstText(doc.Selection, selOrigin),
	}

	items := doc.Find(selSense)
	if items.Length() > maxSenses {
		items = items.Slice(0, maxSenses)
	}
	items.Each(func(_ int, item *goquery.Selection) {
		res.Senses = append(res.Senses, parseSense(item))
	})
	return res
}

// parseSense extracts the fields of one sense item. Extracted elements are
// stripped from a private clone so the residual text holds only the
// descriptive part.
func parseSense(item *goquery.Selection) Sense {
	work := item.Clone()
	var s Sense

	if num := work.Find(selNumber).First(); num.Length() > 0 {
		s.Number = strings.TrimSpace(num.Text())
		num.Remove()
	}

	if ex := work.Find(selExample).First(); ex.Length() > 0 {
		s.Example = ptr(strings.TrimSpace(ex.Text()))
		ex.Remove()
	}

	// Labels are removed whether or not they classify or pair; a paired
	// value list goes with its label. An empty list leaves the field nil.
	work.Find(selLabel).Each(func(_ int, label *goquery.Selection) {
		kind := strings.ToLower(label.Text())
		next := label.Next()
		if next.Length() > 0 && next.HasClass(ClassRelatedList) {
			value := strings.TrimSpace(next.Text())
			if value != "" && strings.Contains(kind, synonymMarker) {
				s.Synonyms = appendDistinct(s.Synonyms, value)
			}
			if value != "" && strings.Contains(kind, antonymMarker) {
				s.Antonyms = appendDistinct(s.Antonyms, value)
			}
			next.Remove()
		}
		label.Remove()
	})

	s.Text = strings.TrimSpace(work.Text())
	return s
}

// ExtractExamples returns the trimmed text of every example span in the
// fragment, in document order.
func ExtractExamples(fragment string) []string {
	examples := []string{}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return examples
	}
	doc.Find(selExamples).Each(func(_ int, ex *goquery.Selection) {
		examples = append(examples, strings.TrimSpace(ex.Text()))
	})
	return examples
}

// firstText returns the trimmed text of the first match of sel, or "".
func firstText(root *goquery.Selection, sel string) string {
	m := root.Find(sel).First()
	if m.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(m.Text())
}

// appendDistinct appends value to acc with a single space, unless value is
// already contained in acc.
func appendDistinct(acc *string, value string) *string {
	if acc == nil {
		return ptr(value)
	}
	if strings.Contains(*acc, value) {
		return acc
	}
	return ptr(*acc + " " + value)
}

func ptr(s string) *string { return &s }
