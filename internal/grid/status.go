package grid

import "reflect"

// RowStatus classifies a grid row relative to the last known persisted state.
type RowStatus string

const (
	StatusClean   RowStatus = "clean"
	StatusAdded   RowStatus = "added"
	StatusUpdated RowStatus = "updated"
	StatusDeleted RowStatus = "deleted"
)

// TrackedRow is a business record carried by an editable grid screen.
// Rows with ID <= 0 have no server-assigned identity yet; callers allocate
// synthetic negative IDs for new rows.
type TrackedRow struct {
	ID         int64          `json:"id"`
	Status     RowStatus      `json:"_status"`
	PrevStatus RowStatus      `json:"_prev_status,omitempty"`
	Fields     map[string]any `json:"fields"`
	Original   map[string]any `json:"-"`
}

// Persisted reports whether the row exists server-side.
func (r TrackedRow) Persisted() bool {
	return r.ID > 0
}

// CleanPredicate decides whether a row's current fields match its clean snapshot.
type CleanPredicate func(TrackedRow) bool

// FieldsMatchOriginal is the default clean predicate: a deep comparison of the
// row's fields against its snapshot. A row without a snapshot never matches.
func FieldsMatchOriginal(row TrackedRow) bool {
	if row.Original == nil {
		return false
	}
	return reflect.DeepEqual(row.Fields, row.Original)
}

// ReconcileUpdatedStatus re-derives a row's status after a cell edit.
// Added and deleted rows are never demoted by field edits; otherwise the row
// becomes clean when the predicate holds (edit-then-revert is not a pending
// change) and updated when it does not.
func ReconcileUpdatedStatus(row TrackedRow, shouldBeClean CleanPredicate) TrackedRow {
	if row.Status == StatusAdded || row.Status == StatusDeleted {
		return row
	}
	if shouldBeClean == nil {
		shouldBeClean = FieldsMatchOriginal
	}
	if shouldBeClean(row) {
		row.Status = StatusClean
	} else {
		row.Status = StatusUpdated
	}
	return row
}

// ToggleOptions controls delete-flag behavior per resource.
type ToggleOptions struct {
	ShouldBeClean CleanPredicate
	// RemoveAddedRow drops a never-persisted row from the collection when its
	// delete flag is set, instead of tagging it deleted.
	RemoveAddedRow bool
}

// ToggleDeletedStatus applies the delete checkbox to the row with the given id
// and returns a new collection in the same order. A missing id is a silent
// no-op. Un-deleting restores the status the row had before deletion was
// toggled on, re-evaluated against the clean predicate when it was updated.
func ToggleDeletedStatus(rows []TrackedRow, rowID int64, checked bool, opts ToggleOptions) []TrackedRow {
	out := make([]TrackedRow, 0, len(rows))
	for _, row := range rows {
		if row.ID != rowID {
			out = append(out, row)
			continue
		}

		switch {
		case !checked && row.Status == StatusDeleted:
			restored := row.PrevStatus
			if restored == "" {
				restored = StatusClean
			}
			row.Status = restored
			row.PrevStatus = ""
			if restored == StatusUpdated {
				row = ReconcileUpdatedStatus(row, opts.ShouldBeClean)
			}
			out = append(out, row)

		case !checked:
			out = append(out, row)

		case row.Status == StatusAdded:
			if opts.RemoveAddedRow {
				// dropped entirely; it was never persisted
				continue
			}
			// policy keeps unsaved rows: the delete flag never demotes an
			// added row, it stays added
			out = append(out, row)

		case row.Status == StatusDeleted:
			// idempotent
			out = append(out, row)

		default:
			row.PrevStatus = row.Status
			row.Status = StatusDeleted
			out = append(out, row)
		}
	}
	return out
}

// ClearOptions controls the post-save stamp-clean pass.
type ClearOptions struct {
	// RemoveDeleted drops rows still tagged deleted (the save removed them
	// server-side).
	RemoveDeleted bool
	// BuildOriginal recomputes the clean snapshot from the row's current
	// fields. When nil the fields are copied as-is.
	BuildOriginal func(TrackedRow) map[string]any
}

// ClearSavedStatuses stamps every surviving row clean after a successful save
// round-trip and refreshes its snapshot. Applying it twice yields the same
// result as applying it once.
func ClearSavedStatuses(rows []TrackedRow, opts ClearOptions) []TrackedRow {
	out := make([]TrackedRow, 0, len(rows))
	for _, row := range rows {
		if row.Status == StatusDeleted && opts.RemoveDeleted {
			continue
		}
		row.Status = StatusClean
		row.PrevStatus = ""
		if opts.BuildOriginal != nil {
			row.Original = opts.BuildOriginal(row)
		} else {
			row.Original = copyFields(row.Fields)
		}
		out = append(out, row)
	}
	return out
}

func copyFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
