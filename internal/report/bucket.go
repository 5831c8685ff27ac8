package report

// Bucket is the due-date classification of a purchase order line
type Bucket int

const (
	Unclassified Bucket = iota
	Overdue             // red
	DueSoon             // yellow
	NotDue              // green, also every fully received line
)

// Fill colors written to the worksheet
const (
	ColorRed    = "FF0000"
	ColorYellow = "FFFF00"
	ColorGreen  = "00FF00"
)

// Color returns the fill color of the bucket, or "" when unclassified
func (b Bucket) Color() string {
	switch b {
	case Overdue:
		return ColorRed
	case DueSoon:
		return ColorYellow
	case NotDue:
		return ColorGreen
	default:
		return ""
	}
}

func (b Bucket) String() string {
	switch b {
	case Overdue:
		return "Red"
	case DueSoon:
		return "Yellow"
	case NotDue:
		return "Green"
	default:
		return "Unclassified"
	}
}

// BucketForDelta classifies an in-progress line by days from today to its
// due date (negative when past due). overdueDays or more days late is
// Overdue, due today or later is NotDue, anything in between is DueSoon.
func BucketForDelta(days, overdueDays int) Bucket {
	switch {
	case days <= -overdueDays:
		return Overdue
	case days >= 0:
		return NotDue
	default:
		return DueSoon
	}
}
