package timesheet

import (
	"net/http"
	"strconv"
	"time"

	"github.com/matterai/timesheet-backend/internal/entity"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500

	filterDateLayout = "2006-01-02"
)

// filterFromQuery builds an entry filter from list/export query parameters.
func filterFromQuery(r *http.Request) entity.EntryFilter {
	q := r.URL.Query()

	filter := entity.EntryFilter{
		Client:     q.Get("client"),
		Matter:     q.Get("matter"),
		Timekeeper: q.Get("timekeeper"),
		EntryType:  entity.NormalizeEntryType(q.Get("type")),
	}

	if from, err := time.Parse(filterDateLayout, q.Get("date_from")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse(filterDateLayout, q.Get("date_to")); err == nil {
		filter.DateTo = &to
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}
	filter.Limit = limit

	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	return filter
}

func toEntryListResponse(entries []*entity.TimesheetEntry, filter entity.EntryFilter) *entity.EntryListResponse {
	page := 1
	if filter.Limit > 0 {
		page = filter.Offset/filter.Limit + 1
	}

	return &entity.EntryListResponse{
		Success:    true,
		Entries:    entries,
		TotalCount: len(entries),
		Page:       page,
		PageSize:   filter.Limit,
	}
}
