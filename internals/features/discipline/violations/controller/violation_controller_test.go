package controller_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/databases/dbtest"
	"disiplinku_backend/internals/features/discipline/violations/route"
	"disiplinku_backend/internals/features/discipline/violations/service"
	activityRepo "disiplinku_backend/internals/features/home/activity_logs/repository"
	helperAuth "disiplinku_backend/internals/helpers/auth"
	"disiplinku_backend/internals/services/email"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Count   int                 `json:"count"`
	Errors  map[string][]string `json:"errors"`
}

func newApp(db *gorm.DB, userID string) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, userID)
		c.Locals(helperAuth.LocUserRole, constants.RoleAdmin)
		return c.Next()
	})
	route.ViolationRoutes(api, db, email.NewMockService(), service.AlertConfig{WarningPoints: 5, DangerPoints: 10})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestViolationEndpoints(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	admin := fx.User("admin-1", constants.RoleAdmin)
	app := newApp(db, admin.UserID)

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")
	vt := fx.ViolationType("تأخر", constants.SeverityMinor, 2)

	body := `{"violation_student_id":` + itoa(st.StudentID) + `,"violation_type_id":` + itoa(vt.ViolationTypeID) +
		`,"violation_date":"2024-10-01","violation_location":"  الفصل  ","violation_points":99}`
	code, env := do(t, app, "POST", "/api/violations", body)
	require.Equal(t, fiber.StatusCreated, code, env.Message)

	var created struct {
		ViolationID       uint    `json:"violation_id"`
		ViolationPoints   int     `json:"violation_points"`
		ViolationLocation *string `json:"violation_location"`
		StudentName       string  `json:"student_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 2, created.ViolationPoints)
	assert.Equal(t, "أحمد", created.StudentName)
	require.NotNil(t, created.ViolationLocation)
	assert.Equal(t, "الفصل", *created.ViolationLocation)

	id := itoa(created.ViolationID)
	code, env = do(t, app, "GET", "/api/students/"+itoa(st.StudentID)+"/violations", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 1, env.Count)

	code, env = do(t, app, "GET", "/api/violations?q=%D8%AA%D8%A3%D8%AE%D8%B1&severity=minor", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 1, env.Count)

	code, env = do(t, app, "GET", "/api/violations/range?from=2024-10-01&to=2024-10-01", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 1, env.Count)

	code, _ = do(t, app, "PATCH", "/api/violations/"+id, `{"violation_description":"بدون عذر"}`)
	assert.Equal(t, fiber.StatusOK, code)

	code, env = do(t, app, "POST", "/api/violations", `{"violation_type_id":1,"violation_date":"kemarin"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "violation_student_id")
	assert.Contains(t, env.Errors, "violation_date")

	code, _ = do(t, app, "GET", "/api/violations/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = do(t, app, "DELETE", "/api/violations/"+id, "")
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = do(t, app, "DELETE", "/api/violations/"+id, "")
	assert.Equal(t, fiber.StatusNotFound, code)

	logs := activityRepo.NewActivityLogRepository(db).GetByEntity(context.Background(), constants.EntityViolation, created.ViolationID)
	assert.Len(t, logs, 3)
}

func itoa(n uint) string {
	b, _ := json.Marshal(n)
	return string(b)
}
