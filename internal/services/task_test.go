package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/pkg/response"
)

func setupProjectWithAdmin(t *testing.T) (*ProjectView, *models.User, *TaskService) {
	t.Helper()

	db := setupTestDB(t)
	admin := createTestUser(t, db, "Alice", "alice@example.com")
	project, err := NewProjectService(db).Create(&CreateProjectRequest{Name: "Website", AdminID: admin.ID})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project, admin, NewTaskService(db)
}

func TestTaskService_Create_DefaultStatus(t *testing.T) {
	project, _, tasks := setupProjectWithAdmin(t)

	task, err := tasks.Create(&CreateTaskRequest{Title: "Build homepage", ProjectID: project.ID})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if task.Status != models.StatusToDo {
		t.Errorf("Status = %q, expected default %q", task.Status, models.StatusToDo)
	}
	if task.Project == nil || task.Project.ID != project.ID {
		t.Error("task project reference should resolve")
	}
	if task.Assignee != nil {
		t.Error("unassigned task should have nil assignee")
	}
}

func TestTaskService_Create_UnknownProject(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskService(db)

	_, err := tasks.Create(&CreateTaskRequest{Title: "Orphan", ProjectID: 999})
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown project, got %v", err)
	}
}

func TestTaskService_Create_UnknownAssignee(t *testing.T) {
	project, _, tasks := setupProjectWithAdmin(t)

	ghost := uint(999)
	_, err := tasks.Create(&CreateTaskRequest{Title: "Haunted", ProjectID: project.ID, AssignedTo: &ghost})
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown assignee, got %v", err)
	}
}

func TestTaskService_List_FilterByProject(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Alice", "alice@example.com")
	projects := NewProjectService(db)
	tasks := NewTaskService(db)

	website, _ := projects.Create(&CreateProjectRequest{Name: "Website", AdminID: admin.ID})
	backend, _ := projects.Create(&CreateProjectRequest{Name: "Backend", AdminID: admin.ID})

	tasks.Create(&CreateTaskRequest{Title: "A", ProjectID: website.ID})
	tasks.Create(&CreateTaskRequest{Title: "B", ProjectID: backend.ID})
	tasks.Create(&CreateTaskRequest{Title: "C", ProjectID: website.ID})

	filtered, err := tasks.List(&website.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("filtered list = %d tasks, expected 2", len(filtered))
	}
	if filtered[0].Title != "A" || filtered[1].Title != "C" {
		t.Errorf("filtered tasks out of order: %v", filtered)
	}

	// Unknown project filter yields an empty list, not an error
	unknown := uint(999)
	empty, err := tasks.List(&unknown)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown project filter should yield empty list, got %d", len(empty))
	}
}

func TestTaskService_Update_PartialFields(t *testing.T) {
	project, admin, tasks := setupProjectWithAdmin(t)

	task, _ := tasks.Create(&CreateTaskRequest{
		Title:       "Build homepage",
		Description: "Initial draft",
		ProjectID:   project.ID,
	})

	status := models.StatusInProgress
	view, err := tasks.Update(task.ID, &UpdateTaskRequest{Status: &status, AssignedTo: &admin.ID})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if view.Status != models.StatusInProgress {
		t.Errorf("Status = %q, expected %q", view.Status, models.StatusInProgress)
	}
	if view.Title != "Build homepage" {
		t.Errorf("omitted title should stay unchanged, got %q", view.Title)
	}
	if view.Assignee == nil || view.Assignee.ID != admin.ID {
		t.Error("assignee should be set")
	}

	// Explicit empty description clears the field
	empty := ""
	view, err = tasks.Update(task.ID, &UpdateTaskRequest{Description: &empty})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if view.Description != "" {
		t.Errorf("explicit empty description should clear, got %q", view.Description)
	}
}

func TestTaskService_Update_ClearAssignee(t *testing.T) {
	project, admin, tasks := setupProjectWithAdmin(t)

	task, _ := tasks.Create(&CreateTaskRequest{
		Title:      "Build homepage",
		ProjectID:  project.ID,
		AssignedTo: &admin.ID,
	})
	if task.Assignee == nil {
		t.Fatal("task should start assigned")
	}

	zero := uint(0)
	view, err := tasks.Update(task.ID, &UpdateTaskRequest{AssignedTo: &zero})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if view.Assignee != nil {
		t.Errorf("assignedTo=0 should clear the assignee, got %v", view.Assignee)
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskService(db)

	title := "ghost"
	_, err := tasks.Update(42, &UpdateTaskRequest{Title: &title})
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestTaskService_Delete_AbsentIsSuccess(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskService(db)

	if err := tasks.Delete(42); err != nil {
		t.Errorf("deleting an absent task should succeed, got %v", err)
	}
}
