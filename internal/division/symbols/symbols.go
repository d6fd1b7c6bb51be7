// Package symbols implements the symbol extractor (spec §4.3): it locates
// procedure/type definitions in added lines of a patch.
package symbols

import (
	"strings"

	"jjdivide/internal/division/model"
)

// procedureMarkers are whole-word tokens that introduce a procedure name.
var procedureMarkers = map[string]struct{}{
	"proc": {}, "func": {}, "method": {}, "iterator": {}, "converter": {},
}

const typeMarker = "type"

// Extract returns the ordered sequence of symbols declared in patch's
// added/unchanged lines. Duplicates are preserved; origin is the given path.
func Extract(patch, origin string) []model.CodeSymbol {
	var out []model.CodeSymbol
	for _, line := range strings.Split(patch, "\n") {
		if model.IsMetadataLine(line) || model.IsRemovedLine(line) {
			continue
		}
		content := line
		if strings.HasPrefix(content, "+") {
			content = content[1:]
		}
		tokens := strings.Fields(content)
		for i, tok := range tokens {
			bare := strings.ToLower(stripPunct(tok, "()[]{},;:*"))
			if _, ok := procedureMarkers[bare]; ok && i+1 < len(tokens) {
				name := stripPunct(tokens[i+1], "()[]{},;:*")
				if name != "" {
					out = append(out, model.CodeSymbol{Name: name, Kind: model.SymbolProcedure, Origin: origin})
				}
				continue
			}
			if bare == typeMarker && i+1 < len(tokens) {
				name := stripPunct(tokens[i+1], "()[]{},;:=")
				if name != "" {
					out = append(out, model.CodeSymbol{Name: name, Kind: model.SymbolType, Origin: origin})
				}
			}
		}
	}
	return out
}

// ExtractDiff runs Extract over every file in d, preserving file order.
func ExtractDiff(d model.DiffResult) []model.CodeSymbol {
	var out []model.CodeSymbol
	for _, f := range d.Files {
		out = append(out, Extract(f.Patch, f.Path)...)
	}
	return out
}

func stripPunct(tok, cutset string) string {
	return strings.Trim(tok, cutset)
}
