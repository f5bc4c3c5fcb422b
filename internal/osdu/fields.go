package osdu

const (
	// FieldsBasic selects the identifying fields plus the full data block.
	FieldsBasic = "basic"

	// FieldsAll omits the field filter so the server returns everything.
	FieldsAll = "all"
)

var basicFields = []string{"id", "kind", "data"}

// FieldSpec selects which record fields a search should return. Either
// Preset names one of the presets ("basic", "all", or a single data
// field), or Fields carries an explicit list passed through verbatim.
type FieldSpec struct {
	Preset string
	Fields []string
}

// returnedFields resolves a FieldSpec into the returnedFields payload
// value, or nil when the filter should be omitted entirely.
func (f FieldSpec) returnedFields() []string {
	if len(f.Fields) > 0 {
		return f.Fields
	}
	switch f.Preset {
	case "", FieldsAll:
		return nil
	case FieldsBasic:
		return basicFields
	default:
		return []string{"id", "kind", "data." + f.Preset}
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultQueryLimit
	}
	if limit > maxQueryLimit {
		return maxQueryLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
