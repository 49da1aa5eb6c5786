package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{})
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	progress := NewProgressService(taskRepo, projectRepo, zap.NewNop())
	suite.service = NewTaskService(taskRepo, projectRepo, progress)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createTestProject() *models.Project {
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

func (suite *TaskServiceTestSuite) reloadProject(id string) *models.Project {
	var project models.Project
	suite.Require().NoError(suite.db.First(&project, "id = ?", id).Error)
	return &project
}

func (suite *TaskServiceTestSuite) TestCreate_UnknownProjectPersistsNothing() {
	_, err := suite.service.Create(CreateTaskInput{
		Title:     "Orphan Task",
		ProjectID: "no-such-project",
	})

	suite.ErrorIs(err, ErrProjectNotFound)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *TaskServiceTestSuite) TestCreate_DefaultsStatusAndPriority() {
	project := suite.createTestProject()

	task, err := suite.service.Create(CreateTaskInput{
		Title:     "New Task",
		ProjectID: project.ID,
	})

	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
	suite.NotEmpty(task.ID)
}

func (suite *TaskServiceTestSuite) TestCreate_DoesNotRecomputeProgress() {
	// A project at 100% stays at 100% when a todo task is created; the wider
	// denominator is only picked up by the next status update or deletion.
	project := suite.createTestProject()
	done, err := suite.service.Create(CreateTaskInput{Title: "Done Task", ProjectID: project.ID})
	suite.Require().NoError(err)
	status := models.TaskStatusDone
	_, err = suite.service.Update(done.ID, UpdateTaskInput{Status: &status})
	suite.Require().NoError(err)
	suite.Equal(100.0, suite.reloadProject(project.ID).Progress)

	_, err = suite.service.Create(CreateTaskInput{Title: "New Todo", ProjectID: project.ID})
	suite.Require().NoError(err)

	suite.Equal(100.0, suite.reloadProject(project.ID).Progress)
}

func (suite *TaskServiceTestSuite) TestUpdate_StatusTriggersRecompute() {
	project := suite.createTestProject()
	task, err := suite.service.Create(CreateTaskInput{Title: "Task A", ProjectID: project.ID})
	suite.Require().NoError(err)
	_, err = suite.service.Create(CreateTaskInput{Title: "Task B", ProjectID: project.ID})
	suite.Require().NoError(err)

	status := models.TaskStatusDone
	updated, err := suite.service.Update(task.ID, UpdateTaskInput{Status: &status})

	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusDone, updated.Status)
	suite.Equal(50.0, suite.reloadProject(project.ID).Progress)
}

func (suite *TaskServiceTestSuite) TestUpdate_WithoutStatusSkipsRecompute() {
	project := suite.createTestProject()
	task, err := suite.service.Create(CreateTaskInput{Title: "Task A", ProjectID: project.ID})
	suite.Require().NoError(err)

	title := "Renamed Task"
	_, err = suite.service.Update(task.ID, UpdateTaskInput{Title: &title})

	suite.Require().NoError(err)
	suite.Equal(0.0, suite.reloadProject(project.ID).Progress)
}

func (suite *TaskServiceTestSuite) TestUpdate_EmptyPatchRejected() {
	project := suite.createTestProject()
	task, err := suite.service.Create(CreateTaskInput{Title: "Task A", ProjectID: project.ID})
	suite.Require().NoError(err)

	_, err = suite.service.Update(task.ID, UpdateTaskInput{})

	suite.ErrorIs(err, ErrNoUpdateData)
}

func (suite *TaskServiceTestSuite) TestUpdate_InvalidStatusRejected() {
	project := suite.createTestProject()
	task, err := suite.service.Create(CreateTaskInput{Title: "Task A", ProjectID: project.ID})
	suite.Require().NoError(err)

	bogus := models.TaskStatus("archived")
	_, err = suite.service.Update(task.ID, UpdateTaskInput{Status: &bogus})

	suite.ErrorIs(err, ErrInvalidTaskStatus)
}

func (suite *TaskServiceTestSuite) TestDelete_RecomputesProgress() {
	project := suite.createTestProject()
	done, err := suite.service.Create(CreateTaskInput{Title: "Done Task", ProjectID: project.ID})
	suite.Require().NoError(err)
	todo, err := suite.service.Create(CreateTaskInput{Title: "Todo Task", ProjectID: project.ID})
	suite.Require().NoError(err)

	status := models.TaskStatusDone
	_, err = suite.service.Update(done.ID, UpdateTaskInput{Status: &status})
	suite.Require().NoError(err)
	suite.Equal(50.0, suite.reloadProject(project.ID).Progress)

	deleted, err := suite.service.Delete(todo.ID)

	suite.Require().NoError(err)
	suite.Equal(todo.ID, deleted.ID)
	suite.Equal(project.ID, deleted.ProjectID)
	suite.Equal(100.0, suite.reloadProject(project.ID).Progress)
}

func (suite *TaskServiceTestSuite) TestDelete_NotFound() {
	_, err := suite.service.Delete("no-such-task")
	suite.ErrorIs(err, ErrTaskNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
