package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManualInitRejectsMalformedBody(t *testing.T) {
	handler := NewManualScheduleHandler(nil)
	c, w := postContext(t, "/schedule/manual/init", `{"sectionId":`)

	handler.Init(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, w))
}

func TestManualAssignRejectsMalformedBody(t *testing.T) {
	handler := NewManualScheduleHandler(nil)
	c, w := postContext(t, "/schedule/manual/assign", `[`)

	handler.Assign(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailableFacultyRequiresQueryParams(t *testing.T) {
	handler := NewManualScheduleHandler(nil)
	c, w := getContext(t, "/schedule/manual/faculty?runId=run-1")

	handler.AvailableFaculty(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, w))
}

func TestAvailableRoomsRequiresQueryParams(t *testing.T) {
	handler := NewManualScheduleHandler(nil)
	c, w := getContext(t, "/schedule/manual/rooms?slotId=slot-1")

	handler.AvailableRooms(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
