package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/databases/dbtest"
	"disiplinku_backend/internals/features/discipline/disciplinary_actions/route"
	helperAuth "disiplinku_backend/internals/helpers/auth"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type actionJSON struct {
	ID          uint    `json:"disciplinary_action_id"`
	TypeName    string  `json:"disciplinary_action_type_name_snapshot"`
	DocumentURL *string `json:"disciplinary_action_document_url"`
}

func send(t *testing.T, app *fiber.App, method, target, contentType string, body io.Reader) (int, actionJSON) {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	var out actionJSON
	if len(env.Data) > 0 && string(env.Data) != "null" {
		_ = json.Unmarshal(env.Data, &out)
	}
	return resp.StatusCode, out
}

func multipartBody(t *testing.T, field, name string, data []byte) (string, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), buf
}

func TestDisciplinaryActionDocumentFlow(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	admin := fx.User("admin-1", constants.RoleAdmin)
	store := &helperOSS.MockBlobService{}

	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, admin.UserID)
		return c.Next()
	})
	route.DisciplinaryActionRoutes(api, db, store)

	y := fx.Year("2024-2025", true)
	g := fx.Grade(y.AcademicYearID, "الصف الأول", 1)
	st := fx.Student(fx.Section(g.GradeID, "أ"), "S-1", "أحمد")
	atp := fx.ActionType("استدعاء ولي الأمر", constants.SeverityModerate)

	payload := `{"disciplinary_action_student_id":` + strconv.Itoa(int(st.StudentID)) +
		`,"disciplinary_action_type_id":` + strconv.Itoa(int(atp.ActionTypeID)) +
		`,"disciplinary_action_date":"2024-10-02"}`
	code, created := send(t, app, "POST", "/api/disciplinary-actions", "application/json", strings.NewReader(payload))
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "استدعاء ولي الأمر", created.TypeName)
	docURL := "/api/disciplinary-actions/" + strconv.Itoa(int(created.ID)) + "/document"

	pdf := []byte("%PDF-1.4\n%%EOF")
	ct, body := multipartBody(t, "document", "surat.pdf", pdf)
	code, first := send(t, app, "POST", docURL, ct, body)
	require.Equal(t, fiber.StatusOK, code)
	require.NotNil(t, first.DocumentURL)
	assert.Equal(t, "application/pdf", store.Objects[*first.DocumentURL])

	// unggah ulang lewat field "file": dokumen lama dihapus dari storage
	ct, body = multipartBody(t, "file", "surat-2.pdf", pdf)
	code, second := send(t, app, "POST", docURL, ct, body)
	require.Equal(t, fiber.StatusOK, code)
	require.NotNil(t, second.DocumentURL)
	assert.NotEqual(t, *first.DocumentURL, *second.DocumentURL)
	assert.Equal(t, []string{*first.DocumentURL}, store.Deleted)

	ct, body = multipartBody(t, "document", "catatan.txt", []byte("hello"))
	code, _ = send(t, app, "POST", docURL, ct, body)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, code)

	code, _ = send(t, app, "POST", docURL, "application/json", strings.NewReader(`{}`))
	assert.Equal(t, fiber.StatusBadRequest, code)

	ct, body = multipartBody(t, "document", "surat.pdf", pdf)
	code, _ = send(t, app, "POST", "/api/disciplinary-actions/999/document", ct, body)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = send(t, app, "DELETE", "/api/disciplinary-actions/"+strconv.Itoa(int(created.ID)), "", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, store.Deleted, *second.DocumentURL)
	assert.Empty(t, store.Objects)
}
