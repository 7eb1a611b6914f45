package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeSchema = Schema{
	Resource: "employees",
	Fields: []FieldSpec{
		{Name: "name", Kind: KindString, Required: true},
		{Name: "email", Kind: KindString},
		{Name: "password", Kind: KindString, OmitIfEmpty: true},
		{Name: "dept_id", Kind: KindNumber},
		{Name: "active", Kind: KindBool},
	},
	RemoveAddedOnDelete: true,
}

func TestBuildBatchPayloadPartition(t *testing.T) {
	rows := []TrackedRow{
		row(1, StatusClean, map[string]any{"name": "Kim"}),
		{ID: -1, Status: StatusAdded, Fields: map[string]any{"name": "Lee"}},
		{ID: -2, Status: StatusAdded, Fields: map[string]any{"name": "Park"}},
		{ID: 2, Status: StatusUpdated, Fields: map[string]any{"name": "Choi"}},
		{ID: 3, Status: StatusDeleted},
		{ID: -3, Status: StatusDeleted}, // never persisted: excluded
	}

	p := BuildBatchPayload(employeeSchema, rows)
	assert.Len(t, p.Inserts, 2)
	assert.Len(t, p.Updates, 1)
	assert.Equal(t, []int64{3}, p.DeleteIDs)
	assert.NotEmpty(t, p.Token)
}

func TestBuildBatchPayloadInsertShape(t *testing.T) {
	rows := []TrackedRow{{ID: -1, Status: StatusAdded, Fields: map[string]any{
		"name":  "  Lee  ",
		"email": "",
	}}}

	p := BuildBatchPayload(employeeSchema, rows)
	require.Len(t, p.Inserts, 1)
	ins := p.Inserts[0]

	assert.Equal(t, "Lee", ins["name"], "strings are trimmed")
	assert.Nil(t, ins["email"], "empty optional fields collapse to null")
	assert.NotContains(t, ins, "id")
	assert.NotContains(t, ins, "_status")
}

func TestBuildBatchPayloadUpdateShape(t *testing.T) {
	rows := []TrackedRow{{ID: 7, Status: StatusUpdated, Fields: map[string]any{
		"name":     "Choi",
		"email":    "",
		"password": "",
	}}}

	p := BuildBatchPayload(employeeSchema, rows)
	require.Len(t, p.Updates, 1)
	upd := p.Updates[0]

	assert.Equal(t, int64(7), upd["id"])
	assert.NotContains(t, upd, "password", "omit-if-empty fields are dropped when unset")
	assert.Nil(t, upd["email"], "plain empty fields are sent as null")
}

func TestBatchPayloadRequest(t *testing.T) {
	rows := []TrackedRow{
		{ID: -1, Status: StatusAdded, Fields: map[string]any{"name": "Lee"}},
		{ID: 2, Status: StatusUpdated, Fields: map[string]any{"name": "Choi"}},
		{ID: 3, Status: StatusDeleted},
	}

	req := BuildBatchPayload(employeeSchema, rows).Request()
	require.Len(t, req.Items, 2)
	assert.Nil(t, req.Items[0]["id"], "insert items carry a null id")
	assert.Equal(t, int64(2), req.Items[1]["id"])
	assert.Equal(t, []int64{3}, req.DeleteIDs)
	assert.NotEmpty(t, req.Token)
}

func TestBatchPayloadRequestEmptyDeleteIDs(t *testing.T) {
	req := BuildBatchPayload(employeeSchema, nil).Request()
	assert.NotNil(t, req.DeleteIDs, "delete_ids serializes as [] rather than null")
	assert.True(t, BuildBatchPayload(employeeSchema, nil).Empty())
}

func TestBatchTokensAreUnique(t *testing.T) {
	a := BuildBatchPayload(employeeSchema, nil)
	b := BuildBatchPayload(employeeSchema, nil)
	assert.NotEqual(t, a.Token, b.Token)
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]any
		wantErr string
	}{
		{"valid", map[string]any{"name": "Kim", "dept_id": float64(3), "active": true}, ""},
		{"missing required", map[string]any{"email": "k@x.com"}, "required"},
		{"blank required", map[string]any{"name": "   "}, "required"},
		{"unknown field", map[string]any{"name": "Kim", "_status": "added"}, "unknown field"},
		{"wrong kind", map[string]any{"name": "Kim", "dept_id": "three"}, "expects a number"},
		{"wrong bool", map[string]any{"name": "Kim", "active": "yes"}, "expects a bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := employeeSchema.Validate(tt.fields)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
