package survey

// ColumnRole classifies what part a column plays in the analysis.
type ColumnRole string

const (
	RoleID        ColumnRole = "id"        // identifies the document, never a predictor
	RoleOutcome   ColumnRole = "outcome"   // a modeled outcome variable
	RoleText      ColumnRole = "text"      // the free-text response
	RoleCondition ColumnRole = "condition" // experimental condition label, excluded from predictors
	RolePredictor ColumnRole = "predictor" // a derived feature column
)

// Standard column names carried by every study file.
const (
	ColStudy       = "study"
	ColParticipant = "participant_id"
	ColCondition   = "condition"
	ColText        = "text"
	ColPRight      = "p_right"
	ColTRight      = "t_right"
)

// Outcomes lists the modeled outcome columns in a fixed order.
func Outcomes() []string {
	return []string{ColPRight, ColTRight}
}

// Roles maps column names to their role. Columns absent from the map are
// predictors by default, which keeps derived feature columns from needing
// individual registration.
type Roles map[string]ColumnRole

// DefaultRoles returns the role assignment for the standard survey schema.
func DefaultRoles() Roles {
	return Roles{
		ColStudy:       RoleID,
		ColParticipant: RoleID,
		ColCondition:   RoleCondition,
		ColText:        RoleText,
		ColPRight:      RoleOutcome,
		ColTRight:      RoleOutcome,
	}
}

// RoleOf returns the role of a column, defaulting to predictor.
func (r Roles) RoleOf(name string) ColumnRole {
	if role, ok := r[name]; ok {
		return role
	}
	return RolePredictor
}

// PredictorColumns returns the table's predictor columns in table order.
func (r Roles) PredictorColumns(t *Table) []string {
	var out []string
	for _, name := range t.ColumnNames() {
		if r.RoleOf(name) == RolePredictor {
			out = append(out, name)
		}
	}
	return out
}

// NonPredictorColumns returns every column that must never enter a model.
func (r Roles) NonPredictorColumns(t *Table) []string {
	var out []string
	for _, name := range t.ColumnNames() {
		if r.RoleOf(name) != RolePredictor {
			out = append(out, name)
		}
	}
	return out
}
