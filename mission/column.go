package mission

// ColumnTarget is how far to turn towards a column and how far to drive to reach it.
type ColumnTarget struct {
	TurnDegrees float64
	DriveTicks  int64
}

// LookupColumn returns the target for a column. Unknown columns use the near column.
func LookupColumn(c Column) ColumnTarget {
	switch c {
	case ColumnFar:
		return ColumnTarget{TurnDegrees: 60, DriveTicks: 750}
	case ColumnCenter:
		return ColumnTarget{TurnDegrees: 37, DriveTicks: 650}
	case ColumnNear:
		return ColumnTarget{TurnDegrees: 17, DriveTicks: 450}
	default:
		return ColumnTarget{TurnDegrees: 17, DriveTicks: 450}
	}
}
