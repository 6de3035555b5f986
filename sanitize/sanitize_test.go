package sanitize

import (
	"strings"
	"testing"
)

func TestFragment_KeepsMarkerClasses(t *testing.T) {
	in := `<div id="definition"><h2 class="AdresseDefinition">mot</h2><li class="DivisionDefinition"><span class="numDef">1.</span> sens</li></div>`
	got := Fragment(in)

	for _, want := range []string{`class="AdresseDefinition"`, `class="DivisionDefinition"`, `class="numDef"`, `id="definition"`} {
		if !strings.Contains(got, want) {
			t.Errorf("sanitized fragment lost %s: %s", want, got)
		}
	}
}

func TestFragment_StripsScripts(t *testing.T) {
	in := `<p class="CatgramDefinition" onclick="steal()">nom</p><script>alert(1)</script><a href="javascript:alert(1)">x</a>`
	got := Fragment(in)

	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("script content survived: %s", got)
	}
	if strings.Contains(got, "onclick") {
		t.Errorf("event handler survived: %s", got)
	}
	if !strings.Contains(got, "nom") {
		t.Errorf("text lost: %s", got)
	}
}

func TestFragment_Empty(t *testing.T) {
	if got := Fragment(""); got != "" {
		t.Errorf("Fragment(\"\") = %q", got)
	}
}
