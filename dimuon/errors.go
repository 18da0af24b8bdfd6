package dimuon

import "fmt"

// MalformedInputError reports a structurally invalid input row: a missing
// field, a non-numeric value in a numeric column, or a charge outside
// {-1,+1}. Row 0 refers to the header.
type MalformedInputError struct {
	Row    int64
	Column string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("dimuon: malformed input at row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("dimuon: malformed input at row %d, column %q: %s", e.Row, e.Column, e.Reason)
}

// InvalidKinematicsError reports a physically impossible quantity, such as
// a negative momentum magnitude or a non-finite angle or energy.
type InvalidKinematicsError struct {
	Quantity string
	Value    float64
}

func (e *InvalidKinematicsError) Error() string {
	return fmt.Sprintf("dimuon: invalid kinematics: %s = %v", e.Quantity, e.Value)
}

// EmptyDatasetError reports that no events reached the summary stage.
type EmptyDatasetError struct{}

func (e *EmptyDatasetError) Error() string {
	return "dimuon: empty dataset: no events were processed"
}
