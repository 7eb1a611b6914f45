package grid

import (
	"strings"

	"github.com/google/uuid"

	"vibe-frontend/internal/timeutil"
)

// BatchPayload is the disjoint partition of a tagged row collection.
// Every row lands in exactly one of inserts, updates, delete-ids, or is a
// no-op (clean rows and deleted rows that were never persisted).
type BatchPayload struct {
	Token     string
	Inserts   []map[string]any
	Updates   []map[string]any
	DeleteIDs []int64
}

// Empty reports whether the payload carries no pending change.
func (p BatchPayload) Empty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0 && len(p.DeleteIDs) == 0
}

// BatchRequest is the wire shape submitted to the upstream batch endpoint.
// Insert items carry a null id; update items carry their persisted id.
type BatchRequest struct {
	Items     []map[string]any `json:"items"`
	DeleteIDs []int64          `json:"delete_ids"`
	Token     string           `json:"batch_token"`
}

// BatchResult is the upstream echo after committing a batch.
type BatchResult struct {
	Items         []map[string]any `json:"items"`
	TotalCount    int              `json:"total_count"`
	InsertedCount int              `json:"inserted_count"`
	UpdatedCount  int              `json:"updated_count"`
	DeletedCount  int              `json:"deleted_count"`
}

// BuildBatchPayload partitions a tagged collection into the insert/update/
// delete-id grouping for one resource. It performs no I/O and cannot fail;
// callers validate rows against the schema before tagging them.
func BuildBatchPayload(schema Schema, rows []TrackedRow) BatchPayload {
	p := BatchPayload{Token: NewBatchToken()}
	for _, row := range rows {
		switch row.Status {
		case StatusAdded:
			p.Inserts = append(p.Inserts, insertFields(schema, row))
		case StatusUpdated:
			p.Updates = append(p.Updates, updateFields(schema, row))
		case StatusDeleted:
			// Deleted rows that were never persisted have nothing to delete.
			if row.Persisted() {
				p.DeleteIDs = append(p.DeleteIDs, row.ID)
			}
		}
	}
	return p
}

// Request flattens the partition into the {items, delete_ids} wire shape.
func (p BatchPayload) Request() BatchRequest {
	items := make([]map[string]any, 0, len(p.Inserts)+len(p.Updates))
	for _, ins := range p.Inserts {
		item := make(map[string]any, len(ins)+1)
		for k, v := range ins {
			item[k] = v
		}
		item["id"] = nil
		items = append(items, item)
	}
	items = append(items, p.Updates...)
	req := BatchRequest{Items: items, DeleteIDs: p.DeleteIDs, Token: p.Token}
	if req.DeleteIDs == nil {
		req.DeleteIDs = []int64{}
	}
	return req
}

// insertFields builds an insert payload: schema fields only, strings trimmed,
// empty optional fields collapsed to null. Client-only bookkeeping (status
// tags, id placeholders) is never serialized.
func insertFields(schema Schema, row TrackedRow) map[string]any {
	out := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		v, present := row.Fields[f.Name]
		if !present || isEmpty(v) {
			if !f.Required {
				out[f.Name] = nil
			}
			continue
		}
		out[f.Name] = normalize(v)
	}
	return out
}

// updateFields builds an update payload keyed by id. OmitIfEmpty fields are
// dropped entirely when empty so the upstream applies partial-update semantics.
func updateFields(schema Schema, row TrackedRow) map[string]any {
	out := make(map[string]any, len(schema.Fields)+1)
	out["id"] = row.ID
	for _, f := range schema.Fields {
		v, present := row.Fields[f.Name]
		if (!present || isEmpty(v)) && f.OmitIfEmpty {
			continue
		}
		if !present || isEmpty(v) {
			out[f.Name] = nil
			continue
		}
		out[f.Name] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// NewBatchToken builds the idempotency token carried by each batch request so
// a retried submission is detectable upstream as the same logical batch.
func NewBatchToken() string {
	return timeutil.Now().Format("20060102150405") + "-" + uuid.NewString()
}
