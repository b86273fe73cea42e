package handlers

import (
	"context"
	"net/http"

	"heating_quoting/internal/models"
	"heating_quoting/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpRole     string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password, role string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpRole = role
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSelection struct {
	result []models.ConfigCandidate
	err    error

	lastSpec models.HeatingRequestSpec
	lastTopN int
	lastAuto bool
	calls    int
}

func (m *mockSelection) SelectTopConfigurations(ctx context.Context, spec models.HeatingRequestSpec, topN int, includeAutomation bool) ([]models.ConfigCandidate, error) {
	m.calls++
	m.lastSpec = spec
	m.lastTopN = topN
	m.lastAuto = includeAutomation
	return m.result, m.err
}

type mockCandidates struct {
	generateResult []models.ConfigCandidate
	generateErr    error
	findResult     []models.ConfigCandidate
	findErr        error
	getResult      *models.ConfigCandidate
	getErr         error
	deleteErr      error
	components     []models.ConfigComponent
	componentsErr  error

	lastRequestID string
	lastTopN      int
	lastAuto      bool
	lastWithComps bool
}

func (m *mockCandidates) Generate(ctx context.Context, requestID string, topN int, includeAutomation bool) ([]models.ConfigCandidate, error) {
	m.lastRequestID = requestID
	m.lastTopN = topN
	m.lastAuto = includeAutomation
	return m.generateResult, m.generateErr
}
func (m *mockCandidates) FindByRequest(ctx context.Context, requestID string, withComponents bool) ([]models.ConfigCandidate, error) {
	m.lastRequestID = requestID
	m.lastWithComps = withComponents
	return m.findResult, m.findErr
}
func (m *mockCandidates) Get(ctx context.Context, candidateID string, withComponents bool) (*models.ConfigCandidate, error) {
	m.lastWithComps = withComponents
	return m.getResult, m.getErr
}
func (m *mockCandidates) Delete(ctx context.Context, candidateID string) error {
	return m.deleteErr
}
func (m *mockCandidates) Components(ctx context.Context, candidateID string) ([]models.ConfigComponent, error) {
	return m.components, m.componentsErr
}

type mockRequests struct {
	createResult *models.HeatingRequest
	createErr    error
	getResult    *models.HeatingRequest
	getErr       error
	listResult   []models.HeatingRequest
	listErr      error
	updateResult *models.HeatingRequest
	updateErr    error
	setStatusErr error
	deleteErr    error
	fixErr       error

	lastCreate       models.HeatingRequest
	lastFilter       models.RequestFilter
	lastUpdate       service.UpdateRequestParams
	lastFixRequest   string
	lastFixCandidate string
}

func (m *mockRequests) Create(ctx context.Context, req models.HeatingRequest) (*models.HeatingRequest, error) {
	m.lastCreate = req
	return m.createResult, m.createErr
}
func (m *mockRequests) Get(ctx context.Context, id string) (*models.HeatingRequest, error) {
	return m.getResult, m.getErr
}
func (m *mockRequests) List(ctx context.Context, f models.RequestFilter) ([]models.HeatingRequest, error) {
	m.lastFilter = f
	return m.listResult, m.listErr
}
func (m *mockRequests) UpdateParams(ctx context.Context, id string, p service.UpdateRequestParams) (*models.HeatingRequest, error) {
	m.lastUpdate = p
	return m.updateResult, m.updateErr
}
func (m *mockRequests) SetStatus(ctx context.Context, id, status string) error {
	return m.setStatusErr
}
func (m *mockRequests) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}
func (m *mockRequests) FixSelection(ctx context.Context, requestID, candidateID string) error {
	m.lastFixRequest = requestID
	m.lastFixCandidate = candidateID
	return m.fixErr
}

type mockCatalog struct {
	createResult *models.Equipment
	createErr    error
	getResult    *models.Equipment
	getErr       error
	updateResult *models.Equipment
	updateErr    error
	deactErr     error
	listResult   []models.Equipment
	listErr      error

	lastCreated  models.Equipment
	lastCategory string
	lastActive   bool
}

func (m *mockCatalog) CreateEquipment(ctx context.Context, e models.Equipment) (*models.Equipment, error) {
	m.lastCreated = e
	return m.createResult, m.createErr
}
func (m *mockCatalog) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	return m.getResult, m.getErr
}
func (m *mockCatalog) UpdateEquipment(ctx context.Context, e models.Equipment) (*models.Equipment, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCatalog) DeactivateEquipment(ctx context.Context, id string) error {
	return m.deactErr
}
func (m *mockCatalog) ListEquipment(ctx context.Context, category string, activeOnly bool, limit, offset int) ([]models.Equipment, error) {
	m.lastCategory = category
	m.lastActive = activeOnly
	return m.listResult, m.listErr
}

type mockLeads struct {
	registerID  string
	registerErr error
	listResult  []models.Lead
	listErr     error

	lastLead models.Lead
}

func (m *mockLeads) Register(ctx context.Context, l models.Lead) (string, error) {
	m.lastLead = l
	return m.registerID, m.registerErr
}
func (m *mockLeads) List(ctx context.Context, limit, offset int) ([]models.Lead, error) {
	return m.listResult, m.listErr
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
