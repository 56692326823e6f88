package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yoBruxo/PTbotKND/internal/api"
	"github.com/yoBruxo/PTbotKND/internal/api/apierr"
	"github.com/yoBruxo/PTbotKND/internal/api/response"
	"github.com/yoBruxo/PTbotKND/internal/dependencies/mocks"
	"github.com/yoBruxo/PTbotKND/internal/events"
	"github.com/yoBruxo/PTbotKND/internal/registry"
	"github.com/yoBruxo/PTbotKND/internal/services/auth"
	"github.com/yoBruxo/PTbotKND/internal/services/party"
	"github.com/yoBruxo/PTbotKND/internal/storage/memory"
	"github.com/yoBruxo/PTbotKND/internal/testutil"
)

const operatorToken = "op-secret"

type APISuite struct {
	suite.Suite
	router     http.Handler
	controller *party.Controller
	dispatcher *events.Dispatcher
	tokenHash  string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupSuite() {
	hash, err := auth.HashToken(operatorToken)
	s.Require().NoError(err)
	s.tokenHash = hash
}

func (s *APISuite) SetupTest() {
	logger := testutil.NopLogger()
	reg := registry.New(memory.New(), logger)
	s.dispatcher = events.NewDispatcher(logger)
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.controller = party.NewController(reg, s.dispatcher, clk, 300*time.Second, logger)

	s.router = api.NewRouter(api.RouterConfig{
		Logger:          logger,
		PartyController: s.controller,
		AuthService:     auth.New(s.tokenHash, logger),
		Clock:           clk,
	})
}

func (s *APISuite) TearDownTest() {
	s.controller.Shutdown()
	s.dispatcher.Close()
}

func (s *APISuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decode(rec *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(out))
}

func (s *APISuite) createParty(creator string) response.Party {
	rec := s.do(http.MethodPost, "/api/v1/parties", map[string]string{"creator_id": creator}, nil)
	s.Require().Equal(http.StatusCreated, rec.Code)
	var p response.Party
	s.decode(rec, &p)
	return p
}

func operatorHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + operatorToken}
}

func (s *APISuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/v1/health", nil, nil)
	s.Equal(http.StatusOK, rec.Code)

	var body response.Health
	s.decode(rec, &body)
	s.Equal("ok", body.Status)
}

func (s *APISuite) TestStatusCounts() {
	p := s.createParty("u1")
	s.createParty("u2")
	rec := s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/close", p.ID),
		map[string]string{"actor_id": "u1"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/status", nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body response.Status
	s.decode(rec, &body)
	s.Equal("online", body.Status)
	s.Equal(1, body.OpenParties)
	s.Equal(2, body.TotalParties)
}

func (s *APISuite) TestCreateParty() {
	p := s.createParty("u1")

	s.Equal(int64(1), p.ID)
	s.Equal("u1", p.CreatorID)
	s.Equal("open", p.Status)
	s.Equal(0, p.TotalOccupancy)
	s.Equal(8, p.MaxSize)
	s.Len(p.Roster, 3)
}

func (s *APISuite) TestCreatePartyRequiresCreator() {
	rec := s.do(http.MethodPost, "/api/v1/parties", map[string]string{}, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	var body apierr.ErrorResponse
	s.decode(rec, &body)
	s.Equal(apierr.CodeInvalidRequest, body.Error.Code)
}

func (s *APISuite) TestJoinAndSwitch() {
	p := s.createParty("u1")

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/join", p.ID),
		map[string]string{"actor_id": "u2", "role": "healer"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body response.OutcomeResponse
	s.decode(rec, &body)
	s.Equal("applied", body.Outcome)
	s.Empty(body.PreviousRole)
	s.Require().NotNil(body.Party)
	s.Equal(1, body.Party.TotalOccupancy)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/join", p.ID),
		map[string]string{"actor_id": "u2", "role": "member"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	body = response.OutcomeResponse{}
	s.decode(rec, &body)
	s.Equal("applied", body.Outcome)
	s.Equal("healer", body.PreviousRole)
	s.Require().NotNil(body.Party)
	s.Equal(1, body.Party.TotalOccupancy)
}

func (s *APISuite) TestJoinFullRoleConflicts() {
	p := s.createParty("u1")
	rec := s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/join", p.ID),
		map[string]string{"actor_id": "u2", "role": "leader"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/join", p.ID),
		map[string]string{"actor_id": "u3", "role": "leader"}, nil)
	s.Equal(http.StatusConflict, rec.Code)

	var body response.OutcomeResponse
	s.decode(rec, &body)
	s.Equal("role_full", body.Outcome)
	s.Nil(body.Party)
}

func (s *APISuite) TestJoinUnknownRole() {
	p := s.createParty("u1")
	rec := s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/join", p.ID),
		map[string]string{"actor_id": "u2", "role": "bard"}, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	var body apierr.ErrorResponse
	s.decode(rec, &body)
	s.Equal(apierr.CodeUnknownRole, body.Error.Code)
}

func (s *APISuite) TestJoinUnknownParty() {
	rec := s.do(http.MethodPost, "/api/v1/parties/42/join",
		map[string]string{"actor_id": "u2", "role": "member"}, nil)
	s.Equal(http.StatusNotFound, rec.Code)

	var body response.OutcomeResponse
	s.decode(rec, &body)
	s.Equal("not_found", body.Outcome)
}

func (s *APISuite) TestLeave() {
	p := s.createParty("u1")
	s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/join", p.ID),
		map[string]string{"actor_id": "u2", "role": "member"}, nil)

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/leave", p.ID),
		map[string]string{"actor_id": "u2", "role": "member"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body response.OutcomeResponse
	s.decode(rec, &body)
	s.Equal("applied", body.Outcome)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/leave", p.ID),
		map[string]string{"actor_id": "u2", "role": "member"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &body)
	s.Equal("not_applicable", body.Outcome)
}

func (s *APISuite) TestCloseAuthorization() {
	p := s.createParty("u1")
	path := fmt.Sprintf("/api/v1/parties/%d/close", p.ID)

	rec := s.do(http.MethodPost, path, map[string]string{"actor_id": "u3"}, nil)
	s.Equal(http.StatusForbidden, rec.Code)

	var body response.OutcomeResponse
	s.decode(rec, &body)
	s.Equal("unauthorized", body.Outcome)

	// The operator token elevates a non-creator actor
	rec = s.do(http.MethodPost, path, map[string]string{"actor_id": "u3"}, operatorHeader())
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &body)
	s.Equal("closed", body.Outcome)

	rec = s.do(http.MethodPost, path, map[string]string{"actor_id": "u1"}, nil)
	s.Equal(http.StatusConflict, rec.Code)
	s.decode(rec, &body)
	s.Equal("already_closed", body.Outcome)
}

func (s *APISuite) TestJoinAfterClose() {
	p := s.createParty("u1")
	s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/close", p.ID),
		map[string]string{"actor_id": "u1"}, nil)

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/join", p.ID),
		map[string]string{"actor_id": "u2", "role": "member"}, nil)
	s.Equal(http.StatusConflict, rec.Code)

	var body response.OutcomeResponse
	s.decode(rec, &body)
	s.Equal("party_closed", body.Outcome)
}

func (s *APISuite) TestGetAndList() {
	p1 := s.createParty("u1")
	s.createParty("u2")

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/v1/parties/%d", p1.ID), nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var got response.Party
	s.decode(rec, &got)
	s.Equal(p1.ID, got.ID)

	rec = s.do(http.MethodGet, "/api/v1/parties", nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list response.PartyList
	s.decode(rec, &list)
	s.Len(list.Parties, 2)

	rec = s.do(http.MethodGet, "/api/v1/parties/42", nil, nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/parties/bogus", nil, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestRemoveRequiresOperatorToken() {
	p := s.createParty("u1")
	s.do(http.MethodPost, fmt.Sprintf("/api/v1/parties/%d/join", p.ID),
		map[string]string{"actor_id": "u2", "role": "healer"}, nil)
	path := fmt.Sprintf("/api/v1/parties/%d/members/u2", p.ID)

	rec := s.do(http.MethodDelete, path, nil, nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, path, nil,
		map[string]string{"Authorization": "Bearer wrong"})
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, path, nil, operatorHeader())
	s.Require().Equal(http.StatusOK, rec.Code)

	var body response.OutcomeResponse
	s.decode(rec, &body)
	s.Equal("removed", body.Outcome)
	s.Equal("healer", body.Role)

	rec = s.do(http.MethodDelete, path, nil, operatorHeader())
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestSetViews() {
	p := s.createParty("u1")

	rec := s.do(http.MethodPut, fmt.Sprintf("/api/v1/parties/%d/views", p.ID),
		map[string]any{"canonical": "msg-1", "listings": []string{"list-1"}}, nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/parties/%d", p.ID), nil, nil)
	var got response.Party
	s.decode(rec, &got)
	s.Equal("msg-1", got.CanonicalView)
	s.Equal([]string{"list-1"}, got.ListingViews)
}
