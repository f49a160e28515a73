package css

import "testing"

func declValue(t *testing.T, decls []Declaration, property string) (Value, bool) {
	t.Helper()
	for _, d := range decls {
		if d.Property == property {
			return d.Value, true
		}
	}
	return Value{}, false
}

func TestParseStylesheetBasic(t *testing.T) {
	sheet := ParseStylesheet(`
		div.card { color: red; width: 100px; }
		#main, p > span { font-weight: bold }
	`)
	if len(sheet.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(sheet.Rules))
	}

	first := sheet.Rules[0]
	if len(first.Selectors) != 1 || first.Selectors[0].String() != "div.card" {
		t.Errorf("rule 0 selector = %v", first.Selectors)
	}
	if v, ok := declValue(t, first.Declarations, "color"); !ok || v.Type != ColorValue {
		t.Errorf("rule 0 color = %+v, ok=%v", v, ok)
	}
	if v, ok := declValue(t, first.Declarations, "width"); !ok || v.Px() != 100 {
		t.Errorf("rule 0 width = %+v, ok=%v", v, ok)
	}

	second := sheet.Rules[1]
	if len(second.Selectors) != 2 {
		t.Errorf("rule 1 has %d selectors, want 2", len(second.Selectors))
	}
	if v, ok := declValue(t, second.Declarations, "font-weight"); !ok || v.Keyword != "bold" {
		t.Errorf("rule 1 font-weight = %+v, ok=%v", v, ok)
	}
}

func TestParseStylesheetRecovery(t *testing.T) {
	// The malformed middle block must not take the rest of the sheet
	// down with it.
	sheet := ParseStylesheet(`
		p { color: red }
		{ orphan: block }
		div { margin-top: ; padding-top: 4px }
		span { color: blue }
	`)
	var selectors []string
	for _, r := range sheet.Rules {
		selectors = append(selectors, r.Selectors[0].String())
	}
	want := map[string]bool{"p": true, "div": true, "span": true}
	for _, s := range selectors {
		if !want[s] {
			t.Errorf("unexpected surviving rule %q", s)
		}
	}
	if len(sheet.Rules) != 3 {
		t.Errorf("got %d rules, want 3 (got selectors %v)", len(sheet.Rules), selectors)
	}
	for _, r := range sheet.Rules {
		if r.Selectors[0].String() == "div" {
			if _, ok := declValue(t, r.Declarations, "margin-top"); ok {
				t.Errorf("valueless declaration was kept")
			}
			if v, ok := declValue(t, r.Declarations, "padding-top"); !ok || v.Px() != 4 {
				t.Errorf("later declaration in same block lost: %+v ok=%v", v, ok)
			}
		}
	}
}

func TestParseStylesheetSkipsAtRules(t *testing.T) {
	sheet := ParseStylesheet(`
		@media screen { p { color: green } }
		p { color: red }
	`)
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(sheet.Rules))
	}
	if v, _ := declValue(t, sheet.Rules[0].Declarations, "color"); v.Color != (Color{255, 0, 0, 255}) {
		t.Errorf("at-rule body leaked into the sheet")
	}
}

func TestShorthandExpansion(t *testing.T) {
	tests := []struct {
		css  string
		want map[string]float64
	}{
		{
			"margin: 10px",
			map[string]float64{"margin-top": 10, "margin-right": 10, "margin-bottom": 10, "margin-left": 10},
		},
		{
			"margin: 1px 2px",
			map[string]float64{"margin-top": 1, "margin-right": 2, "margin-bottom": 1, "margin-left": 2},
		},
		{
			"margin: 1px 2px 3px 4px",
			map[string]float64{"margin-top": 1, "margin-right": 2, "margin-bottom": 3, "margin-left": 4},
		},
		{
			"padding: 5px 6px",
			map[string]float64{"padding-top": 5, "padding-right": 6, "padding-bottom": 5, "padding-left": 6},
		},
	}
	for _, tt := range tests {
		sheet := ParseStylesheet("div { " + tt.css + " }")
		if len(sheet.Rules) != 1 {
			t.Fatalf("%q: got %d rules", tt.css, len(sheet.Rules))
		}
		decls := sheet.Rules[0].Declarations
		if len(decls) != 4 {
			t.Errorf("%q expanded to %d declarations, want 4", tt.css, len(decls))
		}
		for prop, px := range tt.want {
			if v, ok := declValue(t, decls, prop); !ok || v.Px() != px {
				t.Errorf("%q: %s = %+v ok=%v, want %vpx", tt.css, prop, v, ok, px)
			}
		}
	}
}

func TestShorthandThreeValueFallback(t *testing.T) {
	// Three values intentionally keep the raw text under the shorthand
	// name instead of the standard 3-value expansion.
	sheet := ParseStylesheet("div { margin: 1px 2px 3px }")
	decls := sheet.Rules[0].Declarations
	if len(decls) != 1 {
		t.Fatalf("got %d declarations, want 1", len(decls))
	}
	if decls[0].Property != "margin" || decls[0].Value.Raw != "1px 2px 3px" {
		t.Errorf("fallback declaration = %+v", decls[0])
	}
	if _, ok := declValue(t, decls, "margin-top"); ok {
		t.Errorf("3-value shorthand expanded a longhand")
	}
}

func TestBackgroundShorthand(t *testing.T) {
	sheet := ParseStylesheet("div { background: #222222 }")
	v, ok := declValue(t, sheet.Rules[0].Declarations, "background-color")
	if !ok || v.Color != (Color{34, 34, 34, 255}) {
		t.Errorf("background-color = %+v, ok=%v", v, ok)
	}
	if _, ok := declValue(t, sheet.Rules[0].Declarations, "background"); ok {
		t.Errorf("unexpanded background kept")
	}
}

func TestParseInlineDeclarations(t *testing.T) {
	decls := ParseInlineDeclarations("color: rgb(1,2,3); width: 50%; border-style: solid")
	if len(decls) != 3 {
		t.Fatalf("got %d declarations, want 3: %+v", len(decls), decls)
	}
	if v, _ := declValue(t, decls, "color"); v.Color != (Color{1, 2, 3, 255}) {
		t.Errorf("color = %+v", v)
	}
	if v, _ := declValue(t, decls, "width"); v.Type != PercentValue || v.Number != 50 {
		t.Errorf("width = %+v", v)
	}
	if v, _ := declValue(t, decls, "border-style"); v.Keyword != "solid" {
		t.Errorf("border-style = %+v", v)
	}
}

func TestParseInlineDeclarationsMalformed(t *testing.T) {
	decls := ParseInlineDeclarations("color red; width: 10px;; : orphan;")
	if len(decls) != 1 {
		t.Fatalf("got %d declarations, want 1: %+v", len(decls), decls)
	}
	if decls[0].Property != "width" || decls[0].Value.Px() != 10 {
		t.Errorf("surviving declaration = %+v", decls[0])
	}
}

func TestParseStylesheetEmptyAndCommentOnly(t *testing.T) {
	for _, css := range []string{"", "   ", "/* nothing here */"} {
		if sheet := ParseStylesheet(css); len(sheet.Rules) != 0 {
			t.Errorf("ParseStylesheet(%q) produced %d rules", css, len(sheet.Rules))
		}
	}
}
