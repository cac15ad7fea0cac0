package toon

// arrayFormat is the surface form chosen for an array by the selector (§4.4).
type arrayFormat int

const (
	formatInline arrayFormat = iota
	formatTabular
	formatExpanded
)

// selectArrayFormat inspects element shapes and picks INLINE, TABULAR, or
// EXPANDED. An empty array is INLINE.
func selectArrayFormat(elems []*Value) arrayFormat {
	if len(elems) == 0 {
		return formatInline
	}
	allPrimitive := true
	for _, e := range elems {
		if !isPrimitive(e) {
			allPrimitive = false
			break
		}
	}
	if allPrimitive {
		return formatInline
	}

	var fields []string
	tabular := true
	for i, e := range elems {
		if e.Kind != KindObject {
			tabular = false
			break
		}
		keys := e.objVal.Keys()
		if i == 0 {
			fields = keys
		} else if !sameFields(fields, keys) {
			tabular = false
			break
		}
		allPrim := true
		e.objVal.Range(func(_ string, _ bool, v *Value) bool {
			if !isPrimitive(v) {
				allPrim = false
				return false
			}
			return true
		})
		if !allPrim {
			tabular = false
			break
		}
	}
	if tabular && len(fields) > 0 {
		return formatTabular
	}
	return formatExpanded
}

func sameFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
