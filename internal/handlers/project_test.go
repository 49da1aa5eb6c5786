package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	cache  *fakeInsightCache
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{})
	suite.Require().NoError(err)

	projectRepo := repository.NewProjectRepository(suite.db)
	suite.cache = newFakeInsightCache()
	handler := NewProjectHandler(services.NewProjectService(projectRepo), suite.cache)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	projects := suite.router.Group("/api/projects")
	{
		projects.POST("", handler.CreateProject)
		projects.GET("", handler.ListProjects)
		projects.GET("/:id", handler.GetProject)
		projects.PUT("/:id", handler.UpdateProject)
		projects.DELETE("/:id", handler.DeleteProject)
	}
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectHandlerTestSuite) request(method, url string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ProjectHandlerTestSuite) createTestProject() *models.Project {
	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        "Test Project",
		Description: "Test Description",
		Status:      models.ProjectStatusPlanning,
		OwnerID:     "owner-1",
		TeamMembers: []string{},
	}
	suite.Require().NoError(suite.db.Create(project).Error)
	return project
}

func (suite *ProjectHandlerTestSuite) createTestTask(projectID string) *models.Task {
	task := &models.Task{
		ID:        uuid.NewString(),
		Title:     "Test Task",
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityMedium,
		ProjectID: projectID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *ProjectHandlerTestSuite) TestCreateProject() {
	w := suite.request("POST", "/api/projects", map[string]interface{}{
		"name":        "Dashboard Revamp",
		"description": "Rebuild the dashboard",
		"owner_id":    "owner-1",
		"budget":      10000.0,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var created models.Project
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	suite.NotEmpty(created.ID)
	suite.Equal(models.ProjectStatusPlanning, created.Status)
	suite.Equal(0.0, created.Progress)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_MissingName() {
	w := suite.request("POST", "/api/projects", map[string]interface{}{
		"description": "Missing name field",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_NotFound() {
	w := suite.request("GET", "/api/projects/non-existent-id", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject() {
	project := suite.createTestProject()

	w := suite.request("PUT", "/api/projects/"+project.ID, map[string]interface{}{
		"name":   "Updated Project",
		"status": "in_progress",
	})

	suite.Equal(http.StatusOK, w.Code)

	var updated models.Project
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	suite.Equal("Updated Project", updated.Name)
	suite.Equal(models.ProjectStatusInProgress, updated.Status)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_EmptyPatch() {
	project := suite.createTestProject()

	w := suite.request("PUT", "/api/projects/"+project.ID, map[string]interface{}{})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_InvalidStatus() {
	project := suite.createTestProject()

	w := suite.request("PUT", "/api/projects/"+project.ID, map[string]interface{}{
		"status": "abandoned",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_CascadesTasks() {
	project := suite.createTestProject()
	for i := 0; i < 3; i++ {
		suite.createTestTask(project.ID)
	}
	other := suite.createTestProject()
	kept := suite.createTestTask(other.ID)

	w := suite.request("DELETE", "/api/projects/"+project.ID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var taskCount int64
	suite.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount)
	suite.Equal(int64(0), taskCount)

	var projectCount int64
	suite.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount)
	suite.Equal(int64(0), projectCount)

	// Tasks of other projects survive.
	var keptCount int64
	suite.db.Model(&models.Task{}).Where("id = ?", kept.ID).Count(&keptCount)
	suite.Equal(int64(1), keptCount)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_InvalidatesInsightCache() {
	project := suite.createTestProject()
	suite.cache.Set(context.Background(), project.ID, services.InsightsReport{
		ProjectID:     project.ID,
		ProjectHealth: "Excellent",
	})

	w := suite.request("DELETE", "/api/projects/"+project.ID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.False(suite.cache.cached(project.ID))
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_NotFound() {
	w := suite.request("DELETE", "/api/projects/non-existent-id", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
