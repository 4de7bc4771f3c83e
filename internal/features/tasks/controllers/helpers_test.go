package tasks_controllers

import (
	"encoding/json"

	projects_dto "tasktracker/internal/features/projects/dto"
	projects_models "tasktracker/internal/features/projects/models"
)

func projectFromResponse(response projects_dto.ProjectResponseDTO) *projects_models.Project {
	return &projects_models.Project{
		ID:                      response.ID,
		Name:                    response.Name,
		Description:             response.Description,
		OwnerID:                 response.OwnerID,
		AllowMemberViewAllTasks: response.AllowMemberViewAllTasks,
		EnableEmailReminders:    response.EnableEmailReminders,
	}
}

func unmarshalBody(data []byte, out any) error {
	return json.Unmarshal(data, out)
}
