package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
)

// ProgressServiceTestSuite defines the test suite for ProgressService
type ProgressServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	service     *ProgressService
}

// SetupTest runs before each test
func (suite *ProgressServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{})
	suite.Require().NoError(err)

	suite.projectRepo = repository.NewProjectRepository(suite.db)
	suite.taskRepo = repository.NewTaskRepository(suite.db)
	suite.service = NewProgressService(suite.taskRepo, suite.projectRepo, zap.NewNop())
}

// TearDownTest runs after each test
func (suite *ProgressServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProgressServiceTestSuite) createTestProject() *models.Project {
	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        "Test Project",
		Description: "Test Description",
		Status:      models.ProjectStatusInProgress,
		OwnerID:     "owner-1",
		TeamMembers: []string{},
	}
	suite.db.Create(project)
	return project
}

func (suite *ProgressServiceTestSuite) createTestTask(projectID string, status models.TaskStatus) *models.Task {
	task := &models.Task{
		ID:        uuid.NewString(),
		Title:     "Test Task",
		Status:    status,
		Priority:  models.TaskPriorityMedium,
		ProjectID: projectID,
	}
	suite.db.Create(task)
	return task
}

func (suite *ProgressServiceTestSuite) reloadProject(id string) *models.Project {
	var project models.Project
	suite.Require().NoError(suite.db.First(&project, "id = ?", id).Error)
	return &project
}

func (suite *ProgressServiceTestSuite) TestRecompute_QuarterDone() {
	project := suite.createTestProject()
	suite.createTestTask(project.ID, models.TaskStatusDone)
	suite.createTestTask(project.ID, models.TaskStatusTodo)
	suite.createTestTask(project.ID, models.TaskStatusInProgress)
	suite.createTestTask(project.ID, models.TaskStatusReview)

	suite.Require().NoError(suite.service.Recompute(project.ID))

	suite.Equal(25.0, suite.reloadProject(project.ID).Progress)
}

func (suite *ProgressServiceTestSuite) TestRecompute_AllDone() {
	project := suite.createTestProject()
	suite.createTestTask(project.ID, models.TaskStatusDone)
	suite.createTestTask(project.ID, models.TaskStatusDone)

	suite.Require().NoError(suite.service.Recompute(project.ID))

	suite.Equal(100.0, suite.reloadProject(project.ID).Progress)
}

func (suite *ProgressServiceTestSuite) TestRecompute_NoTasksLeavesProgressUntouched() {
	project := suite.createTestProject()
	suite.Require().NoError(suite.db.Model(project).Update("progress", 42.0).Error)

	suite.Require().NoError(suite.service.Recompute(project.ID))

	suite.Equal(42.0, suite.reloadProject(project.ID).Progress)
}

func (suite *ProgressServiceTestSuite) TestRecompute_Idempotent() {
	project := suite.createTestProject()
	suite.createTestTask(project.ID, models.TaskStatusDone)
	suite.createTestTask(project.ID, models.TaskStatusTodo)
	suite.createTestTask(project.ID, models.TaskStatusTodo)

	suite.Require().NoError(suite.service.Recompute(project.ID))
	first := suite.reloadProject(project.ID).Progress

	suite.Require().NoError(suite.service.Recompute(project.ID))
	second := suite.reloadProject(project.ID).Progress

	suite.Equal(first, second)
	suite.InDelta(100.0/3.0, first, 1e-9)
}

func (suite *ProgressServiceTestSuite) TestRecompute_BumpsUpdatedAt() {
	project := suite.createTestProject()
	suite.createTestTask(project.ID, models.TaskStatusDone)

	bumped := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return bumped }

	suite.Require().NoError(suite.service.Recompute(project.ID))

	reloaded := suite.reloadProject(project.ID)
	suite.Equal(100.0, reloaded.Progress)
	suite.WithinDuration(bumped, reloaded.UpdatedAt, time.Second)
}

func (suite *ProgressServiceTestSuite) TestRecomputeBestEffort_SwallowsFailure() {
	service := NewProgressService(failingTaskRepo{}, suite.projectRepo, zap.NewNop())

	suite.NotPanics(func() {
		service.RecomputeBestEffort("some-project")
	})
}

func TestProgressServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProgressServiceTestSuite))
}

// failingTaskRepo simulates a storage failure on the recompute path.
type failingTaskRepo struct{}

func (failingTaskRepo) Create(*models.Task) error            { return errors.New("storage down") }
func (failingTaskRepo) FindByID(string) (*models.Task, error) {
	return nil, errors.New("storage down")
}
func (failingTaskRepo) List(repository.TaskFilter) ([]models.Task, int64, error) {
	return nil, 0, errors.New("storage down")
}
func (failingTaskRepo) FindByProjectID(string) ([]models.Task, error) {
	return nil, errors.New("storage down")
}
func (failingTaskRepo) Update(*models.Task) error { return errors.New("storage down") }
func (failingTaskRepo) Delete(string) error       { return errors.New("storage down") }

func TestProgress_FullPrecision(t *testing.T) {
	tasks := []models.Task{
		{Status: models.TaskStatusDone},
		{Status: models.TaskStatusTodo},
		{Status: models.TaskStatusTodo},
	}

	if got := Progress(tasks); got != 100.0/3.0 {
		t.Errorf("Progress() = %v, want %v", got, 100.0/3.0)
	}
}
