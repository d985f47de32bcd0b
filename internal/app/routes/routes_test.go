package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/ssis/internal/app/controllers"
	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/app/services"
	"github.com/yigit/ssis/internal/middleware"
	"github.com/yigit/ssis/internal/pkg/auth"
)

const testSecret = "route-test-secret"

// memColleges is an in-memory college table
type memColleges struct {
	mu   sync.Mutex
	rows map[string]models.College
}

func (m *memColleges) GetAll(ctx context.Context) ([]*models.College, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*models.College, 0, len(m.rows))
	for _, c := range m.rows {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all, nil
}

func (m *memColleges) GetByCode(ctx context.Context, code string) (*models.College, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[code]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memColleges) Create(ctx context.Context, college *models.College) (*models.College, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *college
	m.rows[c.Code] = c
	return &c, nil
}

func (m *memColleges) Update(ctx context.Context, code string, college *models.College) (*models.College, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[code]; !ok {
		return nil, nil
	}
	delete(m.rows, code)
	c := *college
	m.rows[c.Code] = c
	return &c, nil
}

func (m *memColleges) Delete(ctx context.Context, code string) (*models.College, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[code]
	if !ok {
		return nil, nil
	}
	delete(m.rows, code)
	return &c, nil
}

func (m *memColleges) BulkDelete(ctx context.Context, codes []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, code := range codes {
		if _, ok := m.rows[code]; ok {
			delete(m.rows, code)
			n++
		}
	}
	return n, nil
}

// memPrograms is an in-memory programs table
type memPrograms struct {
	mu   sync.Mutex
	rows map[string]models.Program
}

func (m *memPrograms) GetAll(ctx context.Context) ([]*models.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*models.Program, 0, len(m.rows))
	for _, p := range m.rows {
		p := p
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all, nil
}

func (m *memPrograms) GetByCode(ctx context.Context, code string) (*models.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPrograms) Create(ctx context.Context, program *models.Program) (*models.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := *program
	m.rows[p.Code] = p
	return &p, nil
}

func (m *memPrograms) Update(ctx context.Context, code string, program *models.Program) (*models.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[code]; !ok {
		return nil, nil
	}
	delete(m.rows, code)
	p := *program
	m.rows[p.Code] = p
	return &p, nil
}

func (m *memPrograms) Delete(ctx context.Context, code string) (*models.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[code]
	if !ok {
		return nil, nil
	}
	delete(m.rows, code)
	return &p, nil
}

func (m *memPrograms) BulkDelete(ctx context.Context, codes []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, code := range codes {
		if _, ok := m.rows[code]; ok {
			delete(m.rows, code)
			n++
		}
	}
	return n, nil
}

// memStudents is an in-memory students table; college_code follows the course
// through programs the way the SQL sub-select does
type memStudents struct {
	mu       sync.Mutex
	rows     map[string]models.Student
	programs *memPrograms
}

func (m *memStudents) withCollege(student models.Student) models.Student {
	student.CollegeCode = nil
	if student.Course != nil {
		if p, _ := m.programs.GetByCode(context.Background(), *student.Course); p != nil {
			student.CollegeCode = p.CollegeCode
		}
	}
	return student
}

func (m *memStudents) GetAll(ctx context.Context) ([]*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*models.Student, 0, len(m.rows))
	for _, st := range m.rows {
		st := st
		all = append(all, &st)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].IDNo < all[j].IDNo })
	return all, nil
}

func (m *memStudents) GetByID(ctx context.Context, idNo string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.rows[idNo]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (m *memStudents) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	st := m.withCollege(*student)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[st.IDNo] = st
	return &st, nil
}

func (m *memStudents) Update(ctx context.Context, idNo string, student *models.Student) (*models.Student, error) {
	st := m.withCollege(*student)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[idNo]; !ok {
		return nil, nil
	}
	delete(m.rows, idNo)
	m.rows[st.IDNo] = st
	return &st, nil
}

func (m *memStudents) UpdatePhotoPath(ctx context.Context, idNo string, photoPath string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.rows[idNo]
	if !ok {
		return nil, nil
	}
	st.PhotoPath = &photoPath
	m.rows[idNo] = st
	return &st, nil
}

func (m *memStudents) Delete(ctx context.Context, idNo string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.rows[idNo]
	if !ok {
		return nil, nil
	}
	delete(m.rows, idNo)
	return &st, nil
}

func (m *memStudents) BulkDelete(ctx context.Context, ids []string) ([]*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := []*models.Student{}
	for _, id := range ids {
		if st, ok := m.rows[id]; ok {
			delete(m.rows, id)
			deleted = append(deleted, &st)
		}
	}
	return deleted, nil
}

// memUsers is an in-memory users table
type memUsers struct {
	mu   sync.Mutex
	rows map[string]models.User
}

func (m *memUsers) GetAll(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*models.User, 0, len(m.rows))
	for _, u := range m.rows {
		u := u
		all = append(all, &u)
	}
	return all, nil
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Username == login || u.Email == login {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) UsernameExists(ctx context.Context, username string) (bool, error) {
	u, err := m.GetByUsername(ctx, username)
	return u != nil, err
}

func (m *memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.rows[u.Username] = u
	return &u, nil
}

func (m *memUsers) UpdateDateLogged(ctx context.Context, username string, at time.Time) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[username]
	if !ok {
		return nil, nil
	}
	u.DateLogged = &at
	m.rows[username] = u
	return &u, nil
}

func (m *memUsers) Delete(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[username]
	if !ok {
		return nil, nil
	}
	delete(m.rows, username)
	return &u, nil
}

// brokenMetrics fails every query
type brokenMetrics struct{}

func (brokenMetrics) CountRows(ctx context.Context, table string) (int64, error) {
	return 0, errors.New("relation does not exist")
}

func (brokenMetrics) DailyCounts(ctx context.Context, table string, start, end time.Time, loc *time.Location) ([]models.DailyCount, error) {
	return nil, errors.New("relation does not exist")
}

type testServer struct {
	router   *gin.Engine
	colleges *memColleges
	programs *memPrograms
	students *memStudents
	users    *memUsers
	jwt      *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	colleges := &memColleges{rows: map[string]models.College{}}
	programs := &memPrograms{rows: map[string]models.Program{}}
	students := &memStudents{rows: map[string]models.Student{}, programs: programs}
	users := &memUsers{rows: map[string]models.User{}}
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: testSecret, TokenIssuer: "ssis"})
	denylist := auth.NewMemoryDenylist()
	nop := zerolog.Nop()

	ctrl := Controllers{
		Auth:    controllers.NewAuthController(services.NewAuthService(users, jwtService, nop, services.WithDenylist(denylist)), controllers.CookieConfig{Name: "access_token"}, nop),
		College: controllers.NewCollegeController(services.NewCollegeService(colleges)),
		Program: controllers.NewProgramController(services.NewProgramService(programs)),
		Student: controllers.NewStudentController(services.NewStudentService(students, nil, nop), nop),
		User:    controllers.NewUserController(services.NewUserService(users)),
		Metrics: controllers.NewMetricsController(services.NewMetricsService(brokenMetrics{}, time.UTC, 7, nop)),
	}

	router := gin.New()
	SetupRouter(router, ctrl, middleware.NewAuthMiddleware(jwtService, "access_token", nop).WithDenylist(denylist), "")
	return &testServer{router: router, colleges: colleges, programs: programs, students: students, users: users, jwt: jwtService}
}

func (s *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) authCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, _, err := s.jwt.GenerateToken("admin", "admin@example.com")
	require.NoError(t, err)
	return &http.Cookie{Name: "access_token", Value: token}
}

func authCookieFrom(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "access_token" {
			return c
		}
	}
	return nil
}

func TestHome(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/home", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Backend is working!"}`, w.Body.String())
}

func TestCollegeLifecycle(t *testing.T) {
	s := newTestServer(t)
	cookie := s.authCookie(t)
	ccs := `{"code":"CCS","name":"College of Computer Studies"}`

	w := s.do(http.MethodPost, "/api/colleges/", ccs, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, ccs, w.Body.String())

	w = s.do(http.MethodGet, "/api/colleges/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[`+ccs+`]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/colleges/CCS", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, ccs, w.Body.String())

	w = s.do(http.MethodDelete, "/api/colleges/CCS", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, ccs, w.Body.String())

	w = s.do(http.MethodDelete, "/api/colleges/CCS", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollegeUpdateRenames(t *testing.T) {
	s := newTestServer(t)
	cookie := s.authCookie(t)
	s.colleges.rows["CCS"] = models.College{Code: "CCS", Name: "Computer Studies"}

	w := s.do(http.MethodPut, "/api/colleges/CCS", `{"code":"CICS","name":"Computing and Information Sciences"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/colleges/CCS", "").Code)
	w = s.do(http.MethodGet, "/api/colleges/CICS", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":"CICS","name":"Computing and Information Sciences"}`, w.Body.String())

	w = s.do(http.MethodPut, "/api/colleges/GHOST", `{"code":"GHOST","name":"Nobody"}`, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollegeBulkDelete(t *testing.T) {
	s := newTestServer(t)
	cookie := s.authCookie(t)
	s.colleges.rows["CCS"] = models.College{Code: "CCS", Name: "Computer Studies"}
	s.colleges.rows["COE"] = models.College{Code: "COE", Name: "Engineering"}

	w := s.do(http.MethodPost, "/api/colleges/bulk-delete", `{"codes":["CCS","COE","GHOST"]}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":2}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/colleges/bulk-delete", `{"codes":[]}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgramMissingKeys(t *testing.T) {
	s := newTestServer(t)
	cookie := s.authCookie(t)

	w := s.do(http.MethodPut, "/api/programs/GHOST", `{"code":"GHOST","name":"Nothing","college_code":"CCS"}`, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, s.programs.rows)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/programs/GHOST", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/programs/GHOST", "", cookie).Code)
}

func TestStudentRoundTrip(t *testing.T) {
	s := newTestServer(t)
	cookie := s.authCookie(t)
	ccs := "CCS"
	s.programs.rows["BSCS"] = models.Program{Code: "BSCS", Name: "Computer Science", CollegeCode: &ccs}

	w := s.do(http.MethodPost, "/api/students/", `{"idNo":"2023-0001","firstName":"Juan","lastName":"Dela Cruz","course":"BSCS","year":2,"gender":"Male","college_code":"COE"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	want := `{"idNo":"2023-0001","firstName":"Juan","lastName":"Dela Cruz","course":"BSCS","year":2,"gender":"Male","photo_path":"","college_code":"CCS"}`
	assert.JSONEq(t, want, w.Body.String())

	w = s.do(http.MethodGet, "/api/students/2023-0001", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, want, w.Body.String())

	w = s.do(http.MethodGet, "/api/students/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[`+want+`]`, w.Body.String())
}

func TestStudentMissingKeys(t *testing.T) {
	s := newTestServer(t)
	cookie := s.authCookie(t)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/students/2023-0404", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/students/2023-0404", "", cookie).Code)

	w := s.do(http.MethodPut, "/api/students/2023-0404", `{"idNo":"2023-0404","firstName":"No","lastName":"One","course":"BSCS","year":1,"gender":"Male"}`, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, s.students.rows)
}

func TestStudentBulkDelete(t *testing.T) {
	s := newTestServer(t)
	cookie := s.authCookie(t)
	s.students.rows["2023-0001"] = models.Student{IDNo: "2023-0001", FirstName: "Juan", LastName: "Cruz", Year: 1, Gender: "Male"}
	s.students.rows["2023-0002"] = models.Student{IDNo: "2023-0002", FirstName: "Ana", LastName: "Reyes", Year: 2, Gender: "Female"}
	s.students.rows["2023-0003"] = models.Student{IDNo: "2023-0003", FirstName: "Leo", LastName: "Santos", Year: 3, Gender: "Male"}

	w := s.do(http.MethodPost, "/api/students/bulk-delete", `{"ids":["2023-0001","2023-0002","2023-0404"]}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":2}`, w.Body.String())
	assert.Len(t, s.students.rows, 1)
	assert.Contains(t, s.students.rows, "2023-0003")

	w = s.do(http.MethodPost, "/api/students/bulk-delete", `{"ids":[]}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, s.students.rows, 1)
}

func TestMutationsRequireAuth(t *testing.T) {
	s := newTestServer(t)

	requests := []struct{ method, path, body string }{
		{http.MethodPost, "/api/colleges/", `{"code":"CCS","name":"x"}`},
		{http.MethodPut, "/api/colleges/CCS", `{"code":"CCS","name":"x"}`},
		{http.MethodDelete, "/api/colleges/CCS", ""},
		{http.MethodPost, "/api/colleges/bulk-delete", `{"codes":["CCS"]}`},
		{http.MethodPost, "/api/programs/", `{"code":"BSCS","name":"x","college_code":"CCS"}`},
		{http.MethodPost, "/api/students/", `{"idNo":"2023-0001"}`},
		{http.MethodPost, "/api/students/2023-0001/photo", ""},
		{http.MethodDelete, "/api/users/admin", ""},
		{http.MethodGet, "/api/auth/me", ""},
	}

	for _, r := range requests {
		w := s.do(r.method, r.path, r.body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)
	}
	assert.Empty(t, s.colleges.rows)

	forged := &http.Cookie{Name: "access_token", Value: "not.a.token"}
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodDelete, "/api/colleges/CCS", "", forged).Code)
}

func TestStudentValidation(t *testing.T) {
	s := newTestServer(t)
	cookie := s.authCookie(t)

	w := s.do(http.MethodPost, "/api/students/", `{"idNo":"2023-0001","firstName":"Juan","lastName":"Cruz","course":"BSCS","year":7,"gender":"Male"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/students/2023-0001/photo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsCountsNeverFail(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/metrics/counts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"colleges":0,"programs":0,"students":0,"users":0}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/metrics/daily", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/signup", `{"username":"maria","email":"maria@example.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, authCookieFrom(w))

	w = s.do(http.MethodPost, "/api/auth/signup", `{"username":" maria ","email":"maria@example.com","password":"longenough"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"username":"maria","email":"maria@example.com","dateLogged":null}`, w.Body.String())

	cookie := authCookieFrom(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)
	assert.False(t, cookie.Secure)

	w = s.do(http.MethodPost, "/api/auth/signup", `{"username":"maria","email":"other@example.com","password":"longenough"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	var conflict struct {
		Error struct {
			Field string `json:"field"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
	assert.Equal(t, "username", conflict.Error.Field)
	assert.Len(t, s.users.rows, 1)

	w = s.do(http.MethodPost, "/api/auth/login", `{"usernameOrEmail":"maria","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, s.users.rows["maria"].DateLogged)

	before := time.Now().Add(-time.Second)
	w = s.do(http.MethodPost, "/api/auth/login", `{"usernameOrEmail":"maria@example.com","password":"longenough"}`)
	require.Equal(t, http.StatusOK, w.Code)
	loginCookie := authCookieFrom(w)
	require.NotNil(t, loginCookie)
	logged := s.users.rows["maria"].DateLogged
	require.NotNil(t, logged)
	assert.True(t, logged.After(before))

	w = s.do(http.MethodGet, "/api/auth/me", "", loginCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"maria"`)

	w = s.do(http.MethodPost, "/api/auth/logout", "", loginCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out"}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "HttpOnly")

	w = s.do(http.MethodGet, "/api/auth/me", "", loginCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestSignupRejectsEmailShapedUsername(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/signup", `{"username":"maria@example.com","email":"other@example.com","password":"longenough"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, authCookieFrom(w))
	assert.Empty(t, s.users.rows)
}

func TestMeForDeletedUser(t *testing.T) {
	s := newTestServer(t)
	cookie := s.authCookie(t)

	w := s.do(http.MethodGet, "/api/auth/me", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsers(t *testing.T) {
	s := newTestServer(t)
	s.users.rows["admin"] = models.User{Username: "admin", Email: "admin@example.com", PasswordHash: "hash"}

	w := s.do(http.MethodGet, "/api/users/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")

	cookie := s.authCookie(t)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/users/admin", "", cookie).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/users/admin", "", cookie).Code)
}
