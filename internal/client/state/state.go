// Package state holds the session and catalog state manager: the single
// in-memory owner of the current user, the completion set and the view.
//
// The manager is hydrated from the key-value store at startup. Each intent
// writes through to the store before memory is touched, so a failed write
// leaves the manager exactly as it was. After every successful intent the
// renderer receives a fresh Snapshot.
package state

import (
	"slices"

	"github.com/dmitrijs2005/coursekeeper/internal/client/catalog"
)

// View is the screen the renderer should draw.
type View string

const (
	ViewAuth         View = "auth"
	ViewDashboard    View = "dashboard"
	ViewCourseDetail View = "course_detail"
)

// Snapshot is an immutable copy of the manager state handed to renderers.
type Snapshot struct {
	View      View
	User      string
	Courses   []catalog.Course
	Completed []int
	// Selected is set only in ViewCourseDetail.
	Selected *catalog.Course
}

func (s Snapshot) LoggedIn() bool {
	return s.User != ""
}

func (s Snapshot) IsComplete(id int) bool {
	return slices.Contains(s.Completed, id)
}
