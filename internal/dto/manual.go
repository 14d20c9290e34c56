package dto

// InitManualRunRequest opens a manual scheduling session.
type InitManualRunRequest struct {
	DepartmentID string `json:"departmentId" validate:"required"`
	AcademicYear int    `json:"academicYear" validate:"required,min=2000"`
	Semester     int    `json:"semester" validate:"required,min=1,max=12"`
	BatchYear    int    `json:"batchYear" validate:"required,min=2000"`
	SectionID    string `json:"sectionId" validate:"required"`
	CreatedBy    string `json:"createdBy" validate:"required"`
}

// FacultyAvailability flags whether an eligible faculty member is free for
// a given (day, timeslot) inside the target run.
type FacultyAvailability struct {
	FacultyID   string `json:"facultyId"`
	FacultyName string `json:"facultyName"`
	IsAvailable bool   `json:"isAvailable"`
}

// RoomAvailability flags per-slot occupancy for a room.
type RoomAvailability struct {
	RoomID      string  `json:"roomId"`
	RoomNumber  string  `json:"roomNumber"`
	RoomType    string  `json:"roomType"`
	Capacity    int     `json:"capacity"`
	BuildingID  *string `json:"buildingId,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

// CommitAssignmentRequest records one explicit manual assignment.
type CommitAssignmentRequest struct {
	RunID      string `json:"runId" validate:"required"`
	TimeslotID string `json:"slotId" validate:"required"`
	FacultyID  string `json:"facultyId" validate:"required"`
	RoomID     string `json:"roomId" validate:"required"`
	SubjectID  string `json:"subjectId" validate:"required"`
	SectionID  string `json:"sectionId" validate:"required"`
}
