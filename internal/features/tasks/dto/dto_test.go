package tasks_dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_UpdateTaskRequest_ExplicitNullDiffersFromOmittedField(t *testing.T) {
	var explicit UpdateTaskRequestDTO
	assert.NoError(t, json.Unmarshal([]byte(`{"assigneeId":null,"dueAt":null}`), &explicit))

	assert.True(t, explicit.AssigneeID.Set)
	assert.False(t, explicit.AssigneeID.Valid)
	assert.True(t, explicit.DueAt.Set)
	assert.False(t, explicit.DueAt.Valid)

	var omitted UpdateTaskRequestDTO
	assert.NoError(t, json.Unmarshal([]byte(`{}`), &omitted))

	assert.False(t, omitted.AssigneeID.Set)
	assert.False(t, omitted.DueAt.Set)

	// An explicit unassignment is a real field change, not a status-only update
	assert.False(t, explicit.TouchesOnlyStatus())
	assert.True(t, omitted.TouchesOnlyStatus())
}

func Test_UpdateTaskRequest_ValuesDecodeIntoOptionals(t *testing.T) {
	assigneeID := uuid.New()
	dueAt := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	body := `{"assigneeId":"` + assigneeID.String() + `","dueAt":"` + dueAt.Format(time.RFC3339) + `"}`

	var request UpdateTaskRequestDTO
	assert.NoError(t, json.Unmarshal([]byte(body), &request))

	assert.True(t, request.AssigneeID.Valid)
	assert.Equal(t, assigneeID, request.AssigneeID.Value)
	assert.NotNil(t, request.AssigneeID.Ptr())

	assert.True(t, request.DueAt.Valid)
	assert.True(t, dueAt.Equal(request.DueAt.Value))

	var cleared UpdateTaskRequestDTO
	assert.NoError(t, json.Unmarshal([]byte(`{"assigneeId":null}`), &cleared))
	assert.Nil(t, cleared.AssigneeID.Ptr())
}
