package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/obiano/waitlist-api/config"
	"github.com/obiano/waitlist-api/config/router"
	"github.com/obiano/waitlist-api/domain"
	"github.com/obiano/waitlist-api/internal/log"
	"github.com/obiano/waitlist-api/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type WaitlistAPITestSuite struct {
	suite.Suite
	db        *gorm.DB
	server    *httptest.Server
	baseURL   string
	logger    *log.Logger
	appConfig *config.ApplicationConfig
}

func (suite *WaitlistAPITestSuite) SetupSuite() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.WaitlistEntry{})
	suite.Require().NoError(err)

	suite.logger = log.NewLoggerWithJSONOutput()

	suite.appConfig = &config.ApplicationConfig{
		DB:     suite.db,
		Logger: suite.logger,
	}

	suite.appConfig.RouterService = router.CreateRouterService(suite.logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	domain.SetupCoreDomain(suite.appConfig)

	suite.server = httptest.NewServer(suite.appConfig.RouterService.GetEngine())
	suite.baseURL = suite.server.URL
}

func (suite *WaitlistAPITestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		sqlDB.Close()
	}
}

func (suite *WaitlistAPITestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM waitlists")
}

func (suite *WaitlistAPITestSuite) createEntry(name, email string) map[string]interface{} {
	requestBody := map[string]interface{}{
		"name":  name,
		"email": email,
	}
	jsonBody, _ := json.Marshal(requestBody)

	resp, err := http.Post(suite.baseURL+"/waitlist", "application/json", bytes.NewBuffer(jsonBody))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	var entry map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&entry))
	return entry
}

func (suite *WaitlistAPITestSuite) TestHealthCheck() {
	resp, err := http.Get(suite.baseURL + "/health")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))

	suite.Equal("ok", status["status"])
	suite.Equal(float64(1), status["database"])
	suite.Contains(status, "uptime")
}

func (suite *WaitlistAPITestSuite) TestCreateWaitlistEntry() {
	entry := suite.createEntry("Ada Lovelace", "ada@example.com")

	suite.Equal("Ada Lovelace", entry["name"])
	suite.Equal("ada@example.com", entry["email"])
	suite.Equal(false, entry["isJoined"])
	suite.NotEmpty(entry["id"])
	suite.NotNil(entry["createdAt"])
}

func (suite *WaitlistAPITestSuite) TestCreateWithMalformedEmailReturns400() {
	for _, email := range []string{"plainaddress", "missing@tld", "two@@example.com", "trailing.dot@example.com."} {
		requestBody := map[string]interface{}{
			"name":  "Bad Email",
			"email": email,
		}
		jsonBody, _ := json.Marshal(requestBody)

		resp, err := http.Post(suite.baseURL+"/waitlist", "application/json", bytes.NewBuffer(jsonBody))
		suite.Require().NoError(err)
		resp.Body.Close()

		suite.Equal(http.StatusBadRequest, resp.StatusCode, "email %q should be rejected", email)
	}
}

func (suite *WaitlistAPITestSuite) TestCreateDuplicateEmailReturns409() {
	suite.createEntry("First", "dup@example.com")

	requestBody := map[string]interface{}{
		"name":  "Second",
		"email": "dup@example.com",
	}
	jsonBody, _ := json.Marshal(requestBody)

	resp, err := http.Post(suite.baseURL+"/waitlist", "application/json", bytes.NewBuffer(jsonBody))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusConflict, resp.StatusCode)

	var errorBody map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&errorBody))
	suite.Equal(float64(http.StatusConflict), errorBody["code"])
	suite.NotEmpty(errorBody["message"])
}

func (suite *WaitlistAPITestSuite) TestListOrderedByCreationTime() {
	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		suite.createEntry(name, fmt.Sprintf("entry%d@example.com", i))
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Get(suite.baseURL + "/waitlist")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var entries []map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&entries))

	suite.Require().Len(entries, 3)
	suite.Equal("Alpha", entries[0]["name"])
	suite.Equal("Beta", entries[1]["name"])
	suite.Equal("Gamma", entries[2]["name"])
}

func (suite *WaitlistAPITestSuite) TestGetWaitlistEntryByID() {
	created := suite.createEntry("Grace Hopper", "grace@example.com")
	id := created["id"].(string)

	resp, err := http.Get(suite.baseURL + "/waitlist/" + id)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var entry map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&entry))
	suite.Equal(id, entry["id"])
	suite.Equal("grace@example.com", entry["email"])
}

func (suite *WaitlistAPITestSuite) TestGetUnknownIDReturns404() {
	resp, err := http.Get(suite.baseURL + "/waitlist/no-such-id")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestPartialUpdateOnlyChangesSuppliedFields() {
	created := suite.createEntry("Partial", "partial@example.com")
	id := created["id"].(string)

	updateBody := []byte(`{"isJoined": true}`)
	req, err := http.NewRequest(http.MethodPut, suite.baseURL+"/waitlist/"+id, bytes.NewReader(updateBody))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var entry map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&entry))

	suite.Equal(true, entry["isJoined"])
	suite.Equal("Partial", entry["name"])
	suite.Equal("partial@example.com", entry["email"])
}

func (suite *WaitlistAPITestSuite) TestUpdateWithMalformedEmailReturns400() {
	created := suite.createEntry("Update Email", "valid@example.com")
	id := created["id"].(string)

	updateBody := []byte(`{"email": "not-an-email"}`)
	req, err := http.NewRequest(http.MethodPut, suite.baseURL+"/waitlist/"+id, bytes.NewReader(updateBody))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestUpdateToTakenEmailReturns409() {
	suite.createEntry("Holder", "taken@example.com")
	created := suite.createEntry("Mover", "mover@example.com")
	id := created["id"].(string)

	updateBody := []byte(`{"email": "taken@example.com"}`)
	req, err := http.NewRequest(http.MethodPut, suite.baseURL+"/waitlist/"+id, bytes.NewReader(updateBody))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusConflict, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestUpdateUnknownIDReturns404() {
	updateBody := []byte(`{"isJoined": true}`)
	req, err := http.NewRequest(http.MethodPut, suite.baseURL+"/waitlist/no-such-id", bytes.NewReader(updateBody))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestDeleteReturns204AndEntryIsGone() {
	created := suite.createEntry("Deleted", "deleted@example.com")
	id := created["id"].(string)

	req, err := http.NewRequest(http.MethodDelete, suite.baseURL+"/waitlist/"+id, nil)
	suite.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusNoContent, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	suite.Empty(buf.String(), "204 response must have an empty body")

	getResp, err := http.Get(suite.baseURL + "/waitlist/" + id)
	suite.Require().NoError(err)
	defer getResp.Body.Close()

	suite.Equal(http.StatusNotFound, getResp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestDeleteUnknownIDReturns404() {
	req, err := http.NewRequest(http.MethodDelete, suite.baseURL+"/waitlist/no-such-id", nil)
	suite.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestEmptyListReturnsEmptyArray() {
	resp, err := http.Get(suite.baseURL + "/waitlist")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var entries []map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&entries))
	suite.Empty(entries)
}

func TestWaitlistAPITestSuite(t *testing.T) {
	suite.Run(t, new(WaitlistAPITestSuite))
}
