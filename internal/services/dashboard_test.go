package services

import (
	"testing"

	"github.com/teamtrack/backend/internal/models"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name     string
		done     int64
		total    int64
		expected int
	}{
		{"empty set", 0, 0, 0},
		{"none done", 0, 5, 0},
		{"all done", 5, 5, 100},
		{"one third rounds down", 1, 3, 33},
		{"two thirds rounds up", 2, 3, 67},
		{"half", 1, 2, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progressPercentage(tt.done, tt.total)
			if got != tt.expected {
				t.Errorf("progressPercentage(%d, %d) = %d, expected %d", tt.done, tt.total, got, tt.expected)
			}
		})
	}
}

func TestDashboardService_GlobalStats_Empty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(db)

	stats, err := svc.GlobalStats()
	if err != nil {
		t.Fatalf("GlobalStats() error = %v", err)
	}

	if stats.TotalProjects != 0 || stats.TotalTasks != 0 {
		t.Errorf("empty store should report zero counts, got %+v", stats)
	}
	if stats.ProgressPercentage != 0 {
		t.Errorf("empty store progress = %d, expected 0", stats.ProgressPercentage)
	}
	if len(stats.TasksByStatus) != 0 {
		t.Errorf("empty store should have no status groups, got %v", stats.TasksByStatus)
	}
}

func TestDashboardService_GlobalStats(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Alice", "alice@example.com")
	projects := NewProjectService(db)
	tasks := NewTaskService(db)
	svc := NewDashboardService(db)

	website, _ := projects.Create(&CreateProjectRequest{Name: "Website", AdminID: admin.ID})
	backend, _ := projects.Create(&CreateProjectRequest{Name: "Backend", AdminID: admin.ID})

	tasks.Create(&CreateTaskRequest{Title: "A", ProjectID: website.ID, Status: models.StatusDone})
	tasks.Create(&CreateTaskRequest{Title: "B", ProjectID: website.ID, Status: models.StatusInProgress})
	tasks.Create(&CreateTaskRequest{Title: "C", ProjectID: backend.ID})

	stats, err := svc.GlobalStats()
	if err != nil {
		t.Fatalf("GlobalStats() error = %v", err)
	}

	if stats.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, expected 2", stats.TotalProjects)
	}
	if stats.TotalTasks != 3 {
		t.Errorf("TotalTasks = %d, expected 3", stats.TotalTasks)
	}
	if stats.TasksByStatus[models.StatusDone] != 1 ||
		stats.TasksByStatus[models.StatusInProgress] != 1 ||
		stats.TasksByStatus[models.StatusToDo] != 1 {
		t.Errorf("TasksByStatus = %v", stats.TasksByStatus)
	}
	if stats.ProgressPercentage != 33 {
		t.Errorf("ProgressPercentage = %d, expected 33", stats.ProgressPercentage)
	}
}

func TestDashboardService_ProjectStats_ScopesToProject(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Alice", "alice@example.com")
	projects := NewProjectService(db)
	tasks := NewTaskService(db)
	svc := NewDashboardService(db)

	website, _ := projects.Create(&CreateProjectRequest{Name: "Website", AdminID: admin.ID})
	backend, _ := projects.Create(&CreateProjectRequest{Name: "Backend", AdminID: admin.ID})

	tasks.Create(&CreateTaskRequest{Title: "A", ProjectID: website.ID, Status: models.StatusDone})
	tasks.Create(&CreateTaskRequest{Title: "B", ProjectID: website.ID, Status: models.StatusDone})
	tasks.Create(&CreateTaskRequest{Title: "C", ProjectID: backend.ID})

	stats, err := svc.ProjectStats(website.ID)
	if err != nil {
		t.Fatalf("ProjectStats() error = %v", err)
	}
	if stats.TotalTasks != 2 {
		t.Errorf("TotalTasks = %d, expected 2", stats.TotalTasks)
	}
	if stats.ProgressPercentage != 100 {
		t.Errorf("ProgressPercentage = %d, expected 100", stats.ProgressPercentage)
	}
}

func TestDashboardService_ProjectStats_UnknownProject(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(db)

	stats, err := svc.ProjectStats(42)
	if err != nil {
		t.Fatalf("ProjectStats() error = %v", err)
	}
	if stats.TotalTasks != 0 || stats.ProgressPercentage != 0 {
		t.Errorf("unknown project should report empty stats, got %+v", stats)
	}
}

// UnknownStatusGroups verifies a custom status string forms its own group
// rather than being rejected or folded into a known one.
func TestDashboardService_UnknownStatusGroups(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Alice", "alice@example.com")
	projects := NewProjectService(db)
	tasks := NewTaskService(db)
	svc := NewDashboardService(db)

	website, _ := projects.Create(&CreateProjectRequest{Name: "Website", AdminID: admin.ID})
	tasks.Create(&CreateTaskRequest{Title: "A", ProjectID: website.ID, Status: "Blocked"})

	stats, err := svc.GlobalStats()
	if err != nil {
		t.Fatalf("GlobalStats() error = %v", err)
	}
	if stats.TasksByStatus["Blocked"] != 1 {
		t.Errorf("TasksByStatus = %v, expected Blocked group", stats.TasksByStatus)
	}
}
