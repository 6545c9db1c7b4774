package handlers

import (
	"context"

	"todo_service/internal/models"
	"todo_service/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	genToken     string
	genErr       error
	parseID      int
	parseErr     error
	authorizeU   *models.User
	authorizeErr error

	lastGenEmail    string
	lastGenPassword string
	lastParseToken  string
	lastAuthToken   string
}

func (m *mockAuth) GenerateToken(ctx context.Context, email, password string) (string, error) {
	m.lastGenEmail = email
	m.lastGenPassword = password
	return m.genToken, m.genErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) AuthorizeToken(ctx context.Context, token string) (*models.User, error) {
	m.lastAuthToken = token
	return m.authorizeU, m.authorizeErr
}

type mockUsers struct {
	createU   *models.User
	createErr error
	getU      *models.User
	getErr    error
	updateU   *models.User
	updateErr error
	deleteU   *models.User
	deleteErr error
	authU     *models.User
	authErr   error

	lastCreate      service.CreateUserParams
	lastUpdateID    int
	lastUpdatePatch models.UserPatch
	lastDeleteID    int
}

func (m *mockUsers) Create(ctx context.Context, in service.CreateUserParams) (*models.User, error) {
	m.lastCreate = in
	return m.createU, m.createErr
}
func (m *mockUsers) Get(ctx context.Context, id int) (*models.User, error) {
	return m.getU, m.getErr
}
func (m *mockUsers) Update(ctx context.Context, id int, p models.UserPatch) (*models.User, error) {
	m.lastUpdateID = id
	m.lastUpdatePatch = p
	return m.updateU, m.updateErr
}
func (m *mockUsers) Delete(ctx context.Context, id int) (*models.User, error) {
	m.lastDeleteID = id
	return m.deleteU, m.deleteErr
}
func (m *mockUsers) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return m.authU, m.authErr
}

type mockTodos struct {
	createT    *models.Todo
	createErr  error
	getT       *models.Todo
	getErr     error
	listT      []models.Todo
	listErr    error
	listDoneT  []models.Todo
	listDone   error
	updateT    *models.Todo
	updateErr  error
	deleteT    *models.Todo
	deleteErr  error

	lastCreateOwner int
	lastCreate      service.CreateTodoParams
	lastGetID       int
	lastGetOwner    int
	lastListOwner   int
	lastListOffset  int
	lastListLimit   int
	lastUpdateID    int
	lastUpdateOwner int
	lastUpdatePatch models.TodoPatch
	lastDeleteID    int
	lastDeleteOwner int
}

func (m *mockTodos) Create(ctx context.Context, ownerID int, in service.CreateTodoParams) (*models.Todo, error) {
	m.lastCreateOwner = ownerID
	m.lastCreate = in
	return m.createT, m.createErr
}
func (m *mockTodos) Get(ctx context.Context, id, ownerID int) (*models.Todo, error) {
	m.lastGetID = id
	m.lastGetOwner = ownerID
	return m.getT, m.getErr
}
func (m *mockTodos) List(ctx context.Context, ownerID, offset, limit int) ([]models.Todo, error) {
	m.lastListOwner = ownerID
	m.lastListOffset = offset
	m.lastListLimit = limit
	return m.listT, m.listErr
}
func (m *mockTodos) ListCompleted(ctx context.Context, ownerID int) ([]models.Todo, error) {
	m.lastListOwner = ownerID
	return m.listDoneT, m.listDone
}
func (m *mockTodos) Update(ctx context.Context, id, ownerID int, p models.TodoPatch) (*models.Todo, error) {
	m.lastUpdateID = id
	m.lastUpdateOwner = ownerID
	m.lastUpdatePatch = p
	return m.updateT, m.updateErr
}
func (m *mockTodos) Delete(ctx context.Context, id, ownerID int) (*models.Todo, error) {
	m.lastDeleteID = id
	m.lastDeleteOwner = ownerID
	return m.deleteT, m.deleteErr
}
