package services

import (
	"time"

	"github.com/teamtrack/backend/internal/models"
	"gorm.io/gorm"
)

// UserSummary is the resolved form of a user reference.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectSummary is the resolved form of a project reference.
type ProjectSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ProjectView is a project with its user references resolved.
type ProjectView struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Admin       *UserSummary  `json:"admin"`
	Members     []UserSummary `json:"members"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TaskView is a task with its project and assignee references resolved.
type TaskView struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Project     *ProjectSummary `json:"project"`
	Assignee    *UserSummary    `json:"assignee"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Resolver expands foreign-key references into embedded summaries. A missing
// referenced record never fails resolution; it yields a nil summary (or an
// omitted member) so responses stay usable after deletions.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// ResolveProjects resolves admin and member references for a batch of
// projects with one membership query and one user query.
func (r *Resolver) ResolveProjects(projects []models.Project) ([]ProjectView, error) {
	if len(projects) == 0 {
		return []ProjectView{}, nil
	}

	projectIDs := make([]uint, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	var memberships []models.ProjectMember
	if err := r.db.Where("project_id IN ?", projectIDs).Order("id ASC").Find(&memberships).Error; err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(memberships)+len(projects))
	for _, p := range projects {
		userIDs = append(userIDs, p.AdminID)
	}
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}

	users, err := r.userSummaries(userIDs)
	if err != nil {
		return nil, err
	}

	membersByProject := make(map[uint][]UserSummary)
	for _, m := range memberships {
		if u, ok := users[m.UserID]; ok {
			membersByProject[m.ProjectID] = append(membersByProject[m.ProjectID], u)
		}
	}

	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		view := ProjectView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Members:     membersByProject[p.ID],
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
		if u, ok := users[p.AdminID]; ok {
			admin := u
			view.Admin = &admin
		}
		if view.Members == nil {
			view.Members = []UserSummary{}
		}
		views = append(views, view)
	}
	return views, nil
}

// ResolveProject resolves a single project.
func (r *Resolver) ResolveProject(p *models.Project) (*ProjectView, error) {
	views, err := r.ResolveProjects([]models.Project{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ResolveTasks resolves project and assignee references for a batch of tasks.
func (r *Resolver) ResolveTasks(tasks []models.Task) ([]TaskView, error) {
	if len(tasks) == 0 {
		return []TaskView{}, nil
	}

	projectIDs := make([]uint, 0, len(tasks))
	userIDs := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		projectIDs = append(projectIDs, t.ProjectID)
		if t.AssignedTo != nil {
			userIDs = append(userIDs, *t.AssignedTo)
		}
	}

	projects, err := r.projectSummaries(projectIDs)
	if err != nil {
		return nil, err
	}
	users, err := r.userSummaries(userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := TaskView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
		if p, ok := projects[t.ProjectID]; ok {
			project := p
			view.Project = &project
		}
		if t.AssignedTo != nil {
			if u, ok := users[*t.AssignedTo]; ok {
				assignee := u
				view.Assignee = &assignee
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// ResolveTask resolves a single task.
func (r *Resolver) ResolveTask(t *models.Task) (*TaskView, error) {
	views, err := r.ResolveTasks([]models.Task{*t})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (r *Resolver) userSummaries(ids []uint) (map[uint]UserSummary, error) {
	out := make(map[uint]UserSummary)
	if len(ids) == 0 {
		return out, nil
	}

	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out, nil
}

func (r *Resolver) projectSummaries(ids []uint) (map[uint]ProjectSummary, error) {
	out := make(map[uint]ProjectSummary)
	if len(ids) == 0 {
		return out, nil
	}

	var projects []models.Project
	if err := r.db.Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, p := range projects {
		out[p.ID] = ProjectSummary{ID: p.ID, Name: p.Name}
	}
	return out, nil
}
