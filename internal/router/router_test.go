package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/clinic-api/internal/repository/memory"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/ratelimit"
	"github.com/jwalitptl/clinic-api/pkg/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type Response struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Data    map[string]interface{}   `json:"data"`
	Errors  []map[string]interface{} `json:"errors"`
	Status  int                      `json:"-"`
}

// Object returns the nested object stored under key.
func (r Response) Object(key string) map[string]interface{} {
	if v, ok := r.Data[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func (r Response) List(key string) []interface{} {
	if v, ok := r.Data[key].([]interface{}); ok {
		return v
	}
	return nil
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T, maxRequests int) *testServer {
	t.Helper()
	r := NewRouter(RouterConfig{Environment: "test"}, Dependencies{
		Store:       memory.NewStore(),
		JWT:         auth.NewJWTService("test-secret", time.Hour),
		Hasher:      security.NewBcryptHasher(bcrypt.MinCost),
		RateLimiter: ratelimit.NewMemoryStore(ratelimit.Config{Max: maxRequests, Window: time.Minute}),
		Metrics:     metrics.New("clinic_api"),
	})
	return &testServer{t: t, engine: r.Engine()}
}

func (s *testServer) raw(method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) makeRequest(method, path string, body interface{}, token string) Response {
	s.t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(s.t, err)
		reqBody = bytes.NewReader(jsonBody)
	}

	w := s.raw(method, path, reqBody, token)

	var resp Response
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	resp.Status = w.Code
	return resp
}

func (s *testServer) register(name, email string) string {
	s.t.Helper()
	resp := s.makeRequest(http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(s.t, http.StatusCreated, resp.Status, resp.Message)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func (s *testServer) createPatient(token, name string) int64 {
	s.t.Helper()
	resp := s.makeRequest(http.MethodPost, "/api/patients", map[string]interface{}{"name": name}, token)
	require.Equal(s.t, http.StatusCreated, resp.Status, resp.Message)
	return int64(resp.Object("patient")["id"].(float64))
}

func (s *testServer) createDoctor(token, name, license string) int64 {
	s.t.Helper()
	resp := s.makeRequest(http.MethodPost, "/api/doctors", doctorBody(name, license), token)
	require.Equal(s.t, http.StatusCreated, resp.Status, resp.Message)
	return int64(resp.Object("doctor")["id"].(float64))
}

func doctorBody(name, license string) map[string]interface{} {
	return map[string]interface{}{
		"name":                name,
		"email":               license + "@clinic.example",
		"phone":               "555-0100",
		"specialization":      "Cardiology",
		"license_number":      license,
		"years_of_experience": 10,
		"consultation_fee":    150.5,
	}
}

func TestIndexAndHealth(t *testing.T) {
	s := newTestServer(t, 100)

	index := s.makeRequest(http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, index.Status)
	assert.Equal(t, "Welcome to Healthcare Backend API", index.Message)

	health := s.makeRequest(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, health.Status)
	assert.Equal(t, "Healthcare API is running", health.Message)

	ready := s.makeRequest(http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, ready.Status)

	w := s.raw(http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clinic_api_http_requests_total")

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, 100)

	for _, path := range []string{"/nope", "/api/unknown"} {
		resp := s.makeRequest(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.False(t, resp.Success)
		assert.Equal(t, "Route not found", resp.Message)
	}
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, 100)

	reg := s.makeRequest(http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, reg.Status)
	assert.Equal(t, "User registered successfully", reg.Message)
	assert.Equal(t, "ada@example.com", reg.Object("user")["email"])
	assert.NotContains(t, reg.Object("user"), "password_hash")

	dup := s.makeRequest(http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Ada again",
		"email":    "ada@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, dup.Status)
	assert.Equal(t, "User already exists with this email", dup.Message)

	invalid := s.makeRequest(http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Bob",
		"email":    "not-an-email",
		"password": "123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, invalid.Status)
	assert.Equal(t, "Validation failed", invalid.Message)
	assert.Len(t, invalid.Errors, 2)

	login := s.makeRequest(http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, login.Status)
	assert.Equal(t, "Login successful", login.Message)
	token, _ := login.Data["token"].(string)
	assert.NotEmpty(t, token)

	wrong := s.makeRequest(http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, wrong.Status)
	assert.Equal(t, "Invalid email or password", wrong.Message)

	unknown := s.makeRequest(http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, unknown.Status)
	assert.Equal(t, "Invalid email or password", unknown.Message)

	me := s.makeRequest(http.MethodGet, "/api/patients", nil, token)
	assert.Equal(t, http.StatusOK, me.Status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, 100)

	noToken := s.makeRequest(http.MethodGet, "/api/patients", nil, "")
	assert.Equal(t, http.StatusUnauthorized, noToken.Status)
	assert.Equal(t, "Access denied. No token provided", noToken.Message)

	badToken := s.makeRequest(http.MethodGet, "/api/doctors", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, badToken.Status)
	assert.Equal(t, "Invalid token", badToken.Message)
}

func TestPatientCRUD(t *testing.T) {
	s := newTestServer(t, 100)
	token := s.register("Ada", "ada@example.com")

	created := s.makeRequest(http.MethodPost, "/api/patients", map[string]interface{}{
		"name":          "John Doe",
		"email":         "john@example.com",
		"date_of_birth": "1990-01-15",
		"gender":        "Male",
	}, token)
	require.Equal(t, http.StatusCreated, created.Status, created.Message)
	assert.Equal(t, "Patient created successfully", created.Message)
	patient := created.Object("patient")
	assert.Equal(t, "1990-01-15", patient["date_of_birth"])
	assert.NotContains(t, patient, "created_by")
	id := int64(patient["id"].(float64))

	badGender := s.makeRequest(http.MethodPost, "/api/patients", map[string]interface{}{
		"name":   "Jane",
		"gender": "Unknown",
	}, token)
	assert.Equal(t, http.StatusBadRequest, badGender.Status)
	assert.Equal(t, "Validation failed", badGender.Message)

	dupEmail := s.makeRequest(http.MethodPost, "/api/patients", map[string]interface{}{
		"name":  "John Again",
		"email": "john@example.com",
	}, token)
	assert.Equal(t, http.StatusBadRequest, dupEmail.Status)
	assert.Equal(t, "Patient with this email already exists", dupEmail.Message)

	got := s.makeRequest(http.MethodGet, fmt.Sprintf("/api/patients/%d", id), nil, token)
	assert.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, "John Doe", got.Object("patient")["name"])

	updated := s.makeRequest(http.MethodPut, fmt.Sprintf("/api/patients/%d", id), map[string]interface{}{
		"name":  "John Updated",
		"phone": "555-1234",
	}, token)
	require.Equal(t, http.StatusOK, updated.Status, updated.Message)
	assert.Equal(t, "John Updated", updated.Object("patient")["name"])
	assert.Equal(t, "555-1234", updated.Object("patient")["phone"])

	badID := s.makeRequest(http.MethodGet, "/api/patients/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, badID.Status)
	assert.Equal(t, "Invalid patient ID", badID.Message)

	deleted := s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/patients/%d", id), nil, token)
	assert.Equal(t, http.StatusOK, deleted.Status)
	assert.Equal(t, "Patient deleted successfully", deleted.Message)

	gone := s.makeRequest(http.MethodGet, fmt.Sprintf("/api/patients/%d", id), nil, token)
	assert.Equal(t, http.StatusNotFound, gone.Status)
	assert.Equal(t, "Patient not found", gone.Message)
}

func TestPatientOwnerIsolation(t *testing.T) {
	s := newTestServer(t, 100)
	alice := s.register("Alice", "alice@example.com")
	bob := s.register("Bob", "bob@example.com")

	id := s.createPatient(alice, "Alice's patient")

	path := fmt.Sprintf("/api/patients/%d", id)
	assert.Equal(t, http.StatusNotFound, s.makeRequest(http.MethodGet, path, nil, bob).Status)
	assert.Equal(t, http.StatusNotFound, s.makeRequest(http.MethodPut, path, map[string]interface{}{"name": "x"}, bob).Status)
	assert.Equal(t, http.StatusNotFound, s.makeRequest(http.MethodDelete, path, nil, bob).Status)

	list := s.makeRequest(http.MethodGet, "/api/patients", nil, bob)
	assert.Equal(t, http.StatusOK, list.Status)
	assert.Empty(t, list.List("patients"))

	assert.Equal(t, http.StatusOK, s.makeRequest(http.MethodGet, path, nil, alice).Status)
}

func TestPatientPagination(t *testing.T) {
	s := newTestServer(t, 100)
	token := s.register("Ada", "ada@example.com")

	for i := 0; i < 3; i++ {
		s.createPatient(token, fmt.Sprintf("Patient %d", i))
	}

	resp := s.makeRequest(http.MethodGet, "/api/patients?page=2&limit=2", nil, token)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Patients retrieved successfully", resp.Message)
	assert.Len(t, resp.List("patients"), 1)

	pagination := resp.Object("pagination")
	assert.Equal(t, 2.0, pagination["currentPage"])
	assert.Equal(t, 2.0, pagination["totalPages"])
	assert.Equal(t, 3.0, pagination["totalCount"])
	assert.Equal(t, false, pagination["hasNext"])
	assert.Equal(t, true, pagination["hasPrev"])

	defaults := s.makeRequest(http.MethodGet, "/api/patients?page=abc&limit=0", nil, token)
	require.Equal(t, http.StatusOK, defaults.Status)
	assert.Equal(t, 1.0, defaults.Object("pagination")["currentPage"])
	assert.Len(t, defaults.List("patients"), 3)
}

func TestDoctorPermissions(t *testing.T) {
	s := newTestServer(t, 100)
	alice := s.register("Alice", "alice@example.com")
	bob := s.register("Bob", "bob@example.com")

	id := s.createDoctor(alice, "Dr. Smith", "LIC-1")
	path := fmt.Sprintf("/api/doctors/%d", id)

	visible := s.makeRequest(http.MethodGet, path, nil, bob)
	require.Equal(t, http.StatusOK, visible.Status)
	assert.Equal(t, "Dr. Smith", visible.Object("doctor")["name"])
	assert.Equal(t, 150.5, visible.Object("doctor")["consultation_fee"])

	list := s.makeRequest(http.MethodGet, "/api/doctors?specialization=cardio", nil, bob)
	require.Equal(t, http.StatusOK, list.Status)
	assert.Len(t, list.List("doctors"), 1)

	none := s.makeRequest(http.MethodGet, "/api/doctors?specialization=neuro", nil, bob)
	assert.Empty(t, none.List("doctors"))

	update := s.makeRequest(http.MethodPut, path, doctorBody("Dr. Bob", "LIC-1"), bob)
	assert.Equal(t, http.StatusNotFound, update.Status)
	assert.Equal(t, "Doctor not found or you do not have permission to update this doctor", update.Message)

	del := s.makeRequest(http.MethodDelete, path, nil, bob)
	assert.Equal(t, http.StatusNotFound, del.Status)
	assert.Equal(t, "Doctor not found or you do not have permission to delete this doctor", del.Message)

	dup := s.makeRequest(http.MethodPost, "/api/doctors", doctorBody("Dr. Clone", "LIC-1"), bob)
	assert.Equal(t, http.StatusBadRequest, dup.Status)
	assert.Equal(t, "Doctor with this email or license number already exists", dup.Message)

	missingFee := doctorBody("Dr. Free", "LIC-2")
	delete(missingFee, "consultation_fee")
	invalid := s.makeRequest(http.MethodPost, "/api/doctors", missingFee, bob)
	assert.Equal(t, http.StatusBadRequest, invalid.Status)
	assert.Equal(t, "Validation failed", invalid.Message)

	ok := s.makeRequest(http.MethodPut, path, doctorBody("Dr. Smith Jr.", "LIC-1"), alice)
	require.Equal(t, http.StatusOK, ok.Status, ok.Message)
	assert.Equal(t, "Dr. Smith Jr.", ok.Object("doctor")["name"])

	assert.Equal(t, http.StatusOK, s.makeRequest(http.MethodDelete, path, nil, alice).Status)
	gone := s.makeRequest(http.MethodGet, path, nil, alice)
	assert.Equal(t, http.StatusNotFound, gone.Status)
	assert.Equal(t, "Doctor not found", gone.Message)
}

func TestMappingFlow(t *testing.T) {
	s := newTestServer(t, 100)
	alice := s.register("Alice", "alice@example.com")
	bob := s.register("Bob", "bob@example.com")

	patientID := s.createPatient(alice, "John")
	doctorID := s.createDoctor(bob, "Dr. Smith", "LIC-1")
	bobsPatient := s.createPatient(bob, "Bob's patient")

	assign := func(token string, patient, doctor int64) Response {
		return s.makeRequest(http.MethodPost, "/api/mappings", map[string]interface{}{
			"patient_id": patient,
			"doctor_id":  doctor,
			"notes":      "Initial consultation",
		}, token)
	}

	t.Run("patient is checked before doctor", func(t *testing.T) {
		resp := assign(alice, bobsPatient, 999)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, "Patient not found or you do not have access to this patient", resp.Message)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		resp := assign(alice, patientID, 999)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, "Doctor not found", resp.Message)
	})

	t.Run("invalid body", func(t *testing.T) {
		resp := s.makeRequest(http.MethodPost, "/api/mappings", map[string]interface{}{"patient_id": 0}, alice)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, "Validation failed", resp.Message)
	})

	created := assign(alice, patientID, doctorID)
	require.Equal(t, http.StatusCreated, created.Status, created.Message)
	assert.Equal(t, "Doctor assigned to patient successfully", created.Message)
	mapping := created.Object("mapping")
	assert.Equal(t, "John", mapping["patient_name"])
	assert.Equal(t, "Dr. Smith", mapping["doctor_name"])
	assert.Equal(t, true, mapping["is_active"])
	mappingID := int64(mapping["id"].(float64))

	again := assign(alice, patientID, doctorID)
	assert.Equal(t, http.StatusBadRequest, again.Status)
	assert.Equal(t, "This doctor is already assigned to this patient", again.Message)

	list := s.makeRequest(http.MethodGet, "/api/mappings", nil, alice)
	require.Equal(t, http.StatusOK, list.Status)
	assert.Len(t, list.List("mappings"), 1)
	assert.Empty(t, s.makeRequest(http.MethodGet, "/api/mappings", nil, bob).List("mappings"))

	forPatient := s.makeRequest(http.MethodGet, fmt.Sprintf("/api/mappings/%d", patientID), nil, alice)
	require.Equal(t, http.StatusOK, forPatient.Status)
	assert.Equal(t, "John", forPatient.Object("patient")["name"])
	assert.Len(t, forPatient.List("doctors"), 1)

	hidden := s.makeRequest(http.MethodGet, fmt.Sprintf("/api/mappings/%d", patientID), nil, bob)
	assert.Equal(t, http.StatusNotFound, hidden.Status)

	path := fmt.Sprintf("/api/mappings/%d", mappingID)
	assert.Equal(t, http.StatusNotFound, s.makeRequest(http.MethodDelete, path, nil, bob).Status)

	removed := s.makeRequest(http.MethodDelete, path, nil, alice)
	assert.Equal(t, http.StatusOK, removed.Status)
	assert.Equal(t, "Doctor removed from patient successfully", removed.Message)

	twice := s.makeRequest(http.MethodDelete, path, nil, alice)
	assert.Equal(t, http.StatusNotFound, twice.Status)
	assert.Equal(t, "Mapping not found or you do not have access to this mapping", twice.Message)

	afterDelete := s.makeRequest(http.MethodGet, fmt.Sprintf("/api/mappings/%d", patientID), nil, alice)
	assert.Empty(t, afterDelete.List("doctors"))

	reassigned := assign(alice, patientID, doctorID)
	assert.Equal(t, http.StatusCreated, reassigned.Status)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, 3)

	for i := 0; i < 3; i++ {
		resp := s.makeRequest(http.MethodGet, "/api/patients", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	}

	limited := s.makeRequest(http.MethodGet, "/api/patients", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Status)
	assert.Equal(t, "Too many requests from this IP, please try again later.", limited.Message)

	assert.Equal(t, http.StatusOK, s.makeRequest(http.MethodGet, "/health", nil, "").Status)
}

func TestBodyLimit(t *testing.T) {
	r := NewRouter(RouterConfig{Environment: "test", MaxBodyBytes: 64}, Dependencies{
		Store:       memory.NewStore(),
		JWT:         auth.NewJWTService("test-secret", time.Hour),
		Hasher:      security.NewBcryptHasher(bcrypt.MinCost),
		RateLimiter: ratelimit.NewMemoryStore(ratelimit.Config{}),
		Metrics:     metrics.New("clinic_api"),
	})
	s := &testServer{t: t, engine: r.Engine()}

	resp := s.makeRequest(http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     string(bytes.Repeat([]byte("a"), 100)),
		"email":    "ada@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Status)
	assert.Equal(t, "Request entity too large", resp.Message)
}
