package models

type Label int

const (
	LabelDataInsufficient Label = -1
	LabelCrisis           Label = 1
	LabelDeclining        Label = 2
	LabelPlateauing       Label = 3
	LabelMaintaining      Label = 4
	LabelConsolidating    Label = 5
	LabelAccelerating     Label = 6
)

func (l Label) String() string {
	switch l {
	case LabelAccelerating:
		return "Accelerating"
	case LabelConsolidating:
		return "Consolidating"
	case LabelMaintaining:
		return "Maintaining"
	case LabelPlateauing:
		return "Plateauing"
	case LabelDeclining:
		return "Declining"
	case LabelCrisis:
		return "Crisis"
	default:
		return "Data Insufficient"
	}
}

// Description is a one-line reading of what the label says about a project.
func (l Label) Description() string {
	switch l {
	case LabelAccelerating:
		return "Rapid growth in project development"
	case LabelConsolidating:
		return "Steady, moderate growth"
	case LabelMaintaining:
		return "Stable operation without growth or decline"
	case LabelPlateauing:
		return "Little to no growth, possible onset of stagnation"
	case LabelDeclining:
		return "Noticeable decline in project activities"
	case LabelCrisis:
		return "Severe decline, project at risk"
	default:
		return "No data available"
	}
}
